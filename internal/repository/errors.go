// Package repository implements MySQL persistence for users, credentials and
// verification records. This file defines sentinel errors shared across the
// repositories so handlers can map failures onto HTTP statuses without
// inspecting driver error strings themselves.
package repository

import (
    "errors"
    "strings"
)

// ErrEmailExists is returned when an insert violates the unique index on
// users.email. Handlers translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrCredentialNotFound is returned when a credential lookup (by id or by
// hash) matches no row. Handlers translate this into an HTTP 404 response.
var ErrCredentialNotFound = errors.New("credential not found")

// ErrHashExists is returned when an insert violates the unique index on
// credentials.blockchain_hash. With a millisecond timestamp in the preimage
// this is practically unreachable, but the constraint closes the race anyway.
var ErrHashExists = errors.New("credential hash already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (ER_DUP_ENTRY, code 1062) raised by a unique constraint.
func isDuplicateKey(err error) bool {
    return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
