// Package queue defines message payloads exchanged over the message broker
// and the background consumer that materializes the verification audit trail.
package queue

// CredentialIssuedEvent is published after a credential row has been
// persisted. Downstream consumers can notify students or feed analytics
// without querying the primary database.
type CredentialIssuedEvent struct {
    CredentialID   uint64 `json:"credential_id"`
    StudentID      uint64 `json:"student_id"`
    UniversityID   uint64 `json:"university_id"`
    Title          string `json:"title"`
    IssueDate      string `json:"issue_date"`
    BlockchainHash string `json:"blockchain_hash"`
    IssuedAt       string `json:"issued_at"`
}

// CredentialVerifiedEvent is published after a verify-by-hash call resolved
// a credential. It mirrors the audit row plus the request correlation id.
type CredentialVerifiedEvent struct {
    CredentialID   uint64 `json:"credential_id"`
    BlockchainHash string `json:"blockchain_hash"`
    Title          string `json:"title"`
    VerifierEmail  string `json:"verifier_email"`
    VerifierType   string `json:"verifier_type"`
    Status         string `json:"status"`
    RequestID      string `json:"request_id"`
    VerifiedAt     string `json:"verified_at"`
}
