package model

import "time"

// Role is the closed set of account roles. Every role-gated operation
// switches over these values; free-form role strings are rejected at the
// boundary by ParseRole.
type Role string

const (
    RoleStudent    Role = "student"    // owns credentials issued to them
    RoleUniversity Role = "university" // issues credentials and provisions students
    RoleEmployer   Role = "employer"   // verifies credentials
)

// ParseRole normalizes a raw role string and reports whether it names a
// known role. Unknown values yield ok=false; callers must treat that as a
// validation failure rather than storing the raw string.
func ParseRole(raw string) (Role, bool) {
    switch Role(raw) {
    case RoleStudent:
        return RoleStudent, true
    case RoleUniversity:
        return RoleUniversity, true
    case RoleEmployer:
        return RoleEmployer, true
    }
    return "", false
}

// String returns the role as stored in the users.role column.
func (r Role) String() string { return string(r) }

// User represents a row in the `users` table. Email is stored in its
// lowercase canonical form and is unique at the database level. The
// password column holds only a bcrypt hash; plaintext never reaches
// storage or logs.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name.
//  Email        – unique, lowercase email address.
//  PasswordHash – bcrypt hashed password (users.password).
//  Role         – one of student, university, employer. Immutable after creation.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password
    Role         Role      // users.role
    CreatedAt    time.Time // users.created_at
}

// PublicUser is the projection of a User that is safe to return to
// clients: everything except the password hash.
type PublicUser struct {
    ID        uint64    `json:"id"`
    Name      string    `json:"name"`
    Email     string    `json:"email"`
    Role      Role      `json:"role"`
    CreatedAt time.Time `json:"created_at"`
}

// Public converts a User into its client-facing projection.
func (u User) Public() PublicUser {
    return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}
