package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/credchain/credential-registry/internal/model"
	"github.com/credchain/credential-registry/internal/utils"
)

// CredentialRepo persists rows of the 'credentials' table. Rows are insert-
// only: the registry never updates or deletes a credential.
type CredentialRepo struct{ DB *sql.DB }

func NewCredentialRepo(db *sql.DB) *CredentialRepo { return &CredentialRepo{DB: db} }

// credentialViewCols is the join used wherever a credential is returned with
// the display names of its student and issuing university.
const credentialViewCols = `SELECT c.id, c.student_id, c.university_id, c.title, c.description,
       c.issue_date, c.blockchain_hash, c.created_at, s.name, s.email, u.name
  FROM credentials c
  JOIN users s ON c.student_id = s.id
  JOIN users u ON c.university_id = u.id`

// Create derives the blockchain hash from the student id, university id,
// title and the current millisecond timestamp, then inserts the credential.
// It returns the new row's id together with the hash. Uniqueness of the hash
// is guaranteed by the database index; a collision maps to ErrHashExists.
func (r *CredentialRepo) Create(ctx context.Context, studentID, universityID uint64, title, description string, issueDate time.Time) (uint64, string, error) {
	hash := utils.CredentialHash(studentID, universityID, title, time.Now().UTC())

	var desc interface{}
	if description != "" {
		desc = description
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO credentials (student_id, university_id, title, description, issue_date, blockchain_hash) VALUES (?,?,?,?,?,?)",
		studentID, universityID, title, desc, issueDate.Format("2006-01-02"), hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, "", ErrHashExists
		}
		return 0, "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, "", err
	}
	return uint64(id), hash, nil
}

// FindByHash resolves a credential by its blockchain hash, joined with the
// student and university names. A miss yields ErrCredentialNotFound; the
// verify flow must not append an audit row in that case.
func (r *CredentialRepo) FindByHash(ctx context.Context, hash string) (model.CredentialView, error) {
	row := r.DB.QueryRowContext(ctx, credentialViewCols+" WHERE c.blockchain_hash = ?", hash)
	return scanCredentialView(row)
}

// FindByID resolves a credential by primary key with both names joined.
func (r *CredentialRepo) FindByID(ctx context.Context, id uint64) (model.CredentialView, error) {
	row := r.DB.QueryRowContext(ctx, credentialViewCols+" WHERE c.id = ?", id)
	return scanCredentialView(row)
}

// ListByStudent returns the credentials owned by a student, newest issue
// date first, each joined with the issuing university's name.
func (r *CredentialRepo) ListByStudent(ctx context.Context, studentID uint64) ([]model.CredentialView, error) {
	const q = `SELECT c.id, c.student_id, c.university_id, c.title, c.description,
       c.issue_date, c.blockchain_hash, c.created_at, u.name
  FROM credentials c
  JOIN users u ON c.university_id = u.id
 WHERE c.student_id = ?
 ORDER BY c.issue_date DESC`
	rows, err := r.DB.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CredentialView, 0)
	for rows.Next() {
		var v model.CredentialView
		var desc sql.NullString
		if err := rows.Scan(&v.ID, &v.StudentID, &v.UniversityID, &v.Title, &desc,
			&v.IssueDate, &v.BlockchainHash, &v.CreatedAt, &v.UniversityName); err != nil {
			return nil, err
		}
		v.Description = desc.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListByUniversity returns the credentials a university has issued, newest
// first, each joined with the student's name and email.
func (r *CredentialRepo) ListByUniversity(ctx context.Context, universityID uint64) ([]model.CredentialView, error) {
	const q = `SELECT c.id, c.student_id, c.university_id, c.title, c.description,
       c.issue_date, c.blockchain_hash, c.created_at, s.name, s.email
  FROM credentials c
  JOIN users s ON c.student_id = s.id
 WHERE c.university_id = ?
 ORDER BY c.created_at DESC`
	rows, err := r.DB.QueryContext(ctx, q, universityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CredentialView, 0)
	for rows.Next() {
		var v model.CredentialView
		var desc sql.NullString
		if err := rows.Scan(&v.ID, &v.StudentID, &v.UniversityID, &v.Title, &desc,
			&v.IssueDate, &v.BlockchainHash, &v.CreatedAt, &v.StudentName, &v.StudentEmail); err != nil {
			return nil, err
		}
		v.Description = desc.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// ListAll returns every credential in the registry with both names joined,
// newest first. Reachable by any university-role actor.
func (r *CredentialRepo) ListAll(ctx context.Context) ([]model.CredentialView, error) {
	rows, err := r.DB.QueryContext(ctx, credentialViewCols+" ORDER BY c.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.CredentialView, 0)
	for rows.Next() {
		var v model.CredentialView
		var desc sql.NullString
		if err := rows.Scan(&v.ID, &v.StudentID, &v.UniversityID, &v.Title, &desc,
			&v.IssueDate, &v.BlockchainHash, &v.CreatedAt, &v.StudentName, &v.StudentEmail, &v.UniversityName); err != nil {
			return nil, err
		}
		v.Description = desc.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// scanCredentialView scans one row of the full three-way join.
func scanCredentialView(row *sql.Row) (model.CredentialView, error) {
	var v model.CredentialView
	var desc sql.NullString
	err := row.Scan(&v.ID, &v.StudentID, &v.UniversityID, &v.Title, &desc,
		&v.IssueDate, &v.BlockchainHash, &v.CreatedAt, &v.StudentName, &v.StudentEmail, &v.UniversityName)
	if err == sql.ErrNoRows {
		return model.CredentialView{}, ErrCredentialNotFound
	}
	if err != nil {
		return model.CredentialView{}, err
	}
	v.Description = desc.String
	return v, nil
}
