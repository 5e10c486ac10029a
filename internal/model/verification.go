package model

import "time"

// VerifierType records who performed a verify-by-hash lookup. Authenticated
// callers map to their role; everyone else is recorded as public.
type VerifierType string

const (
    VerifierPublic     VerifierType = "public"
    VerifierStudent    VerifierType = "student"
    VerifierUniversity VerifierType = "university"
    VerifierEmployer   VerifierType = "employer"
)

// AnonymousVerifierEmail is recorded when the caller is unauthenticated or
// when the caller's user record can no longer be resolved.
const AnonymousVerifierEmail = "public@verification.com"

// VerifierTypeForRole maps an account role onto the verifier type recorded
// in the audit log.
func VerifierTypeForRole(r Role) VerifierType {
    switch r {
    case RoleStudent:
        return VerifierStudent
    case RoleUniversity:
        return VerifierUniversity
    case RoleEmployer:
        return VerifierEmployer
    }
    return VerifierPublic
}

// Verification statuses. "verified" is written by the verify flow; the
// status-update path exists for completeness but no current flow uses it.
const (
    VerificationStatusPending  = "pending"
    VerificationStatusVerified = "verified"
)

// VerificationRecord represents a row in the `verification_requests` table.
// One row is appended per verification attempt that resolved a credential;
// rows are never deleted.
type VerificationRecord struct {
    ID            uint64       // verification_requests.id
    CredentialID  uint64       // verification_requests.credential_id
    VerifierEmail string       // verification_requests.verifier_email
    VerifierType  VerifierType // verification_requests.verifier_type
    Status        string       // verification_requests.status
    VerifiedAt    time.Time    // verification_requests.verified_at
}
