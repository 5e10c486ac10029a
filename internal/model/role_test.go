package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"student", RoleStudent, true},
		{"university", RoleUniversity, true},
		{"employer", RoleEmployer, true},
		{"admin", "", false},
		{"Student", "", false}, // normalization is the caller's job
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		require.Equal(t, tc.ok, ok, "ParseRole(%q)", tc.in)
		require.Equal(t, tc.want, got, "ParseRole(%q)", tc.in)
	}
}

func TestVerifierTypeForRole(t *testing.T) {
	require.Equal(t, VerifierStudent, VerifierTypeForRole(RoleStudent))
	require.Equal(t, VerifierUniversity, VerifierTypeForRole(RoleUniversity))
	require.Equal(t, VerifierEmployer, VerifierTypeForRole(RoleEmployer))
	require.Equal(t, VerifierPublic, VerifierTypeForRole(Role("bogus")))
}

func TestUserPublicOmitsHash(t *testing.T) {
	u := User{ID: 1, Name: "N", Email: "n@x.com", PasswordHash: "$2a$...", Role: RoleStudent}
	p := u.Public()
	require.Equal(t, u.ID, p.ID)
	require.Equal(t, u.Email, p.Email)
	// PublicUser has no hash field at all; this test documents the intent.
}
