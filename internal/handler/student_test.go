package handler

import (
	"database/sql/driver"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/credchain/credential-registry/internal/repository"
	"github.com/credchain/credential-registry/internal/utils"
)

func newStudentHandler(t *testing.T) (*StudentHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMock(t)
	return NewStudentHandler(testCfg, repository.NewUserRepo(db)), mock
}

func TestAddStudentMissingFields(t *testing.T) {
	h, _ := newStudentHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/students/add", `{"name":"Stu"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddStudentUsesDefaultPassword(t *testing.T) {
	h, mock := newStudentHandler(t)

	var gotHash string
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Stu", "dup@x.com", hashCapture{&gotHash}, "student").
		WillReturnResult(sqlmock.NewResult(7, 1))

	c, rec := newTestContext(t, http.MethodPost, "/students/add", `{"name":"Stu","email":"dup@x.com"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// The default password is stored hashed, never verbatim.
	require.NotEqual(t, DefaultStudentPassword, gotHash)
	require.True(t, utils.VerifyPassword(gotHash, DefaultStudentPassword))

	body := decodeBody(t, rec)
	student, _ := body["student"].(map[string]any)
	require.EqualValues(t, 7, student["id"])
	require.Equal(t, "student", student["role"])
}

func TestAddStudentDuplicateEmail(t *testing.T) {
	h, mock := newStudentHandler(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'dup@x.com' for key 'uq_users_email'"))

	c, rec := newTestContext(t, http.MethodPost, "/students/add", `{"name":"Stu","email":"dup@x.com"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Add(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	// Exactly one insert was attempted; the constraint rejected it.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudents(t *testing.T) {
	h, mock := newStudentHandler(t)

	now := time.Now()
	mock.ExpectQuery("WHERE role='student'").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
			AddRow(7, "Stu", "s@x.com", now).
			AddRow(6, "Older Stu", "o@x.com", now.Add(-time.Hour)))

	c, rec := newTestContext(t, http.MethodGet, "/students", "")
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	students, _ := body["students"].([]any)
	require.Len(t, students, 2)
	first, _ := students[0].(map[string]any)
	require.Equal(t, "s@x.com", first["email"])
}

// hashCapture matches any string argument and records it so assertions can
// check the stored bcrypt hash.
type hashCapture struct{ dst *string }

func (h hashCapture) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*h.dst = s
	}
	return ok
}
