package model

import "time"

// Credential represents a row in the `credentials` table. A credential is
// immutable after creation: there is no update or delete operation.
// BlockchainHash is a SHA-256 hex digest derived at creation time from the
// student id, university id, title and a millisecond timestamp. It serves as
// a unique, hard-to-guess lookup key, not an integrity proof over the full
// record.
type Credential struct {
    ID             uint64    // credentials.id
    StudentID      uint64    // credentials.student_id (role=student)
    UniversityID   uint64    // credentials.university_id (role=university)
    Title          string    // credentials.title
    Description    string    // credentials.description (may be empty)
    IssueDate      time.Time // credentials.issue_date (DATE)
    BlockchainHash string    // credentials.blockchain_hash (64 hex chars)
    CreatedAt      time.Time // credentials.created_at
}

// CredentialView is a credential joined with the display names resolved from
// the users table. Which name fields are populated depends on the query:
// student listings carry the university name, university listings carry the
// student name and email, and verification results carry both names.
type CredentialView struct {
    Credential
    StudentName    string // users.name of the student, when joined
    StudentEmail   string // users.email of the student, when joined
    UniversityName string // users.name of the issuing university, when joined
}
