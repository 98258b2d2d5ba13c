// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account represents a clinic/therapist identity that owns patients and their
// therapy data. The numeric ID is assigned by the database and immutable; the
// email doubles as a secondary lookup key for legacy tokens.
type Account struct {
	ID           int64     // Unique numeric identifier, never reassigned.
	Name         string    // Display name of the clinic or therapist.
	Email        string    // Unique login email, also a secondary token-subject lookup key.
	PasswordHash string    // Bcrypt hash of the password. The plaintext is never stored or logged.
	Role         Role      // Access level: clinic (default) or admin.
	CreatedAt    time.Time // Timestamp of registration.
	UpdatedAt    time.Time // Timestamp of the last profile change.
}

// IsAdmin reports whether the account holds the administrator role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
