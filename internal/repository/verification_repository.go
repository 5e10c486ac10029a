package repository

import (
	"context"
	"database/sql"

	"github.com/credchain/credential-registry/internal/model"
)

// VerificationRepo persists rows of the 'verification_requests' table. Rows
// are appended by the verify flow and never removed.
type VerificationRepo struct{ DB *sql.DB }

func NewVerificationRepo(db *sql.DB) *VerificationRepo { return &VerificationRepo{DB: db} }

// Create appends one verification record and returns its id. Callers on the
// verify path treat a failure here as non-fatal: the verification result has
// already been established from the credential lookup.
func (r *VerificationRepo) Create(ctx context.Context, credentialID uint64, verifierEmail string, verifierType model.VerifierType, status string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO verification_requests (credential_id, verifier_email, verifier_type, status) VALUES (?,?,?,?)",
		credentialID, verifierEmail, string(verifierType), status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByCredential returns the audit history for one credential, newest
// first.
func (r *VerificationRepo) ListByCredential(ctx context.Context, credentialID uint64) ([]model.VerificationRecord, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, credential_id, verifier_email, verifier_type, status, verified_at FROM verification_requests WHERE credential_id=? ORDER BY verified_at DESC",
		credentialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.VerificationRecord, 0)
	for rows.Next() {
		var rec model.VerificationRecord
		var vtype string
		if err := rows.Scan(&rec.ID, &rec.CredentialID, &rec.VerifierEmail, &vtype, &rec.Status, &rec.VerifiedAt); err != nil {
			return nil, err
		}
		rec.VerifierType = model.VerifierType(vtype)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpdateStatus sets the status of an existing record and refreshes its
// verified_at timestamp. No current flow calls this; it exists for parity
// with the stored schema.
func (r *VerificationRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE verification_requests SET status=?, verified_at=CURRENT_TIMESTAMP WHERE id=?",
		status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
