// Package entity contains the core business objects of the project.
package entity

// Role represents the access level of an account in the system.
type Role string

const (
	// RoleClinic indicates a regular clinic/therapist account.
	RoleClinic Role = "clinic"
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleClinic, RoleAdmin:
		return true
	default:
		return false
	}
}
