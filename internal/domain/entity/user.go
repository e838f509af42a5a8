package entity

import "time"

// User is an account in the planning suite. Role is one of the eight rbac roles;
// authorization tables live in pkg/rbac, not here.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, never plaintext after persisting
	FullName     string
	Role         string
	Department   string
	IsActive     bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
