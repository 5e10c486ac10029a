package handler

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/credchain/credential-registry/internal/repository"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func newCredentialHandler(t *testing.T) (*CredentialHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMock(t)
	h := NewCredentialHandler(testCfg,
		repository.NewCredentialRepo(db),
		repository.NewUserRepo(db),
		repository.NewVerificationRepo(db),
		nil)
	return h, mock
}

func TestIssueForbiddenForNonUniversity(t *testing.T) {
	h, mock := newCredentialHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/credentials/issue",
		`{"student_id":7,"title":"BSc CS","issue_date":"2024-01-01"}`)
	asIdentity(c, 9, "s@x.com", "student")
	require.NoError(t, h.Issue(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet()) // no insert attempted
}

func TestIssueMissingFields(t *testing.T) {
	h, _ := newCredentialHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/credentials/issue", `{"title":"BSc CS"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Issue(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueRejectsBadDate(t *testing.T) {
	h, _ := newCredentialHandler(t)

	c, rec := newTestContext(t, http.MethodPost, "/credentials/issue",
		`{"student_id":7,"title":"BSc CS","issue_date":"January 1st"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Issue(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIssueCreatesCredential(t *testing.T) {
	h, mock := newCredentialHandler(t)

	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(7, 3, "BSc CS", nil, "2024-01-01", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	c, rec := newTestContext(t, http.MethodPost, "/credentials/issue",
		`{"student_id":7,"title":"BSc CS","issue_date":"2024-01-01"}`)
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.Issue(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	cred, _ := body["credential"].(map[string]any)
	require.EqualValues(t, 11, cred["id"])
	require.Regexp(t, hexDigest, cred["blockchain_hash"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListStudentEmptyIsNotAnError(t *testing.T) {
	h, mock := newCredentialHandler(t)

	mock.ExpectQuery("WHERE c.student_id").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "university_id", "title", "description",
			"issue_date", "blockchain_hash", "created_at", "u.name",
		}))

	c, rec := newTestContext(t, http.MethodGet, "/credentials/student", "")
	asIdentity(c, 9, "s@x.com", "student")
	require.NoError(t, h.ListStudent(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"credentials":[]}`, rec.Body.String())
}

func TestListUniversityJoinsStudent(t *testing.T) {
	h, mock := newCredentialHandler(t)

	now := time.Now()
	mock.ExpectQuery("WHERE c.university_id").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "university_id", "title", "description",
			"issue_date", "blockchain_hash", "created_at", "s.name", "s.email",
		}).AddRow(11, 7, 3, "BSc CS", nil, now, "somehash", now, "Stu Dent", "s@x.com"))

	c, rec := newTestContext(t, http.MethodGet, "/credentials/university", "")
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.ListUniversity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	items, _ := body["credentials"].([]any)
	require.Len(t, items, 1)
	item, _ := items[0].(map[string]any)
	require.Equal(t, "Stu Dent", item["student_name"])
	require.Equal(t, "s@x.com", item["student_email"])
}

func TestListVerificationsUnknownCredential(t *testing.T) {
	h, mock := newCredentialHandler(t)

	mock.ExpectQuery("WHERE c.id").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "university_id", "title", "description",
			"issue_date", "blockchain_hash", "created_at", "s.name", "s.email", "u.name",
		}))

	c, rec := newTestContext(t, http.MethodGet, "/credentials/99/verifications", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	asIdentity(c, 3, "u@x.com", "university")
	require.NoError(t, h.ListVerifications(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
