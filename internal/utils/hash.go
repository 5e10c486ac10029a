package utils

import (
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "time"
)

// CredentialHash derives the blockchain_hash for a new credential: the
// SHA-256 hex digest of the student id, university id, title and a
// millisecond timestamp, concatenated without separators. The timestamp
// makes re-issuing an identical title produce a distinct hash. The digest is
// an opaque lookup key; description and issue date are deliberately not part
// of the preimage.
func CredentialHash(studentID, universityID uint64, title string, at time.Time) string {
    preimage := fmt.Sprintf("%d%d%s%d", studentID, universityID, title, at.UnixMilli())
    sum := sha256.Sum256([]byte(preimage))
    return hex.EncodeToString(sum[:])
}
