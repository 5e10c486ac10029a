package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{64}$`)

func newCredentialMock(t *testing.T) (*CredentialRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCredentialRepo(db), mock
}

func credentialViewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_id", "university_id", "title", "description",
		"issue_date", "blockchain_hash", "created_at", "s.name", "s.email", "u.name",
	})
}

func TestCredentialCreateReturnsHexHash(t *testing.T) {
	repo, mock := newCredentialMock(t)

	issueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO credentials (student_id, university_id, title, description, issue_date, blockchain_hash) VALUES (?,?,?,?,?,?)")).
		WithArgs(7, 3, "BSc CS", nil, "2024-01-01", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, hash, err := repo.Create(context.Background(), 7, 3, "BSc CS", "", issueDate)
	require.NoError(t, err)
	require.Equal(t, uint64(11), id)
	require.Regexp(t, hexDigest, hash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredentialCreateWithDescription(t *testing.T) {
	repo, mock := newCredentialMock(t)

	issueDate := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO credentials").
		WithArgs(7, 3, "MSc CS", "with honors", "2024-06-15", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))

	_, _, err := repo.Create(context.Background(), 7, 3, "MSc CS", "with honors", issueDate)
	require.NoError(t, err)
}

func TestCredentialFindByHash(t *testing.T) {
	repo, mock := newCredentialMock(t)

	now := time.Now()
	mock.ExpectQuery("SELECT c.id, c.student_id, c.university_id").
		WithArgs("abc123").
		WillReturnRows(credentialViewRows().
			AddRow(11, 7, 3, "BSc CS", nil, now, "abc123", now, "Stu Dent", "s@x.com", "Uni"))

	v, err := repo.FindByHash(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, uint64(11), v.ID)
	require.Equal(t, "BSc CS", v.Title)
	require.Empty(t, v.Description) // NULL description scans to empty string
	require.Equal(t, "Stu Dent", v.StudentName)
	require.Equal(t, "Uni", v.UniversityName)
}

func TestCredentialFindByHashMiss(t *testing.T) {
	repo, mock := newCredentialMock(t)

	mock.ExpectQuery("SELECT c.id, c.student_id, c.university_id").
		WithArgs("nope").
		WillReturnRows(credentialViewRows())

	_, err := repo.FindByHash(context.Background(), "nope")
	require.ErrorIs(t, err, ErrCredentialNotFound)
}

func TestCredentialListByStudentEmpty(t *testing.T) {
	repo, mock := newCredentialMock(t)

	mock.ExpectQuery("WHERE c.student_id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "university_id", "title", "description",
			"issue_date", "blockchain_hash", "created_at", "u.name",
		}))

	views, err := repo.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, views)
	require.Empty(t, views)
}

func TestCredentialListByStudentOrder(t *testing.T) {
	repo, mock := newCredentialMock(t)

	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("ORDER BY c.issue_date DESC").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "student_id", "university_id", "title", "description",
			"issue_date", "blockchain_hash", "created_at", "u.name",
		}).
			AddRow(2, 7, 3, "MSc CS", "thesis", newer, "hash2", newer, "Uni").
			AddRow(1, 7, 3, "BSc CS", nil, older, "hash1", older, "Uni"))

	views, err := repo.ListByStudent(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "MSc CS", views[0].Title)
	require.Equal(t, "thesis", views[0].Description)
	require.Equal(t, "Uni", views[1].UniversityName)
}
