// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"emotionai/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its numeric identifier.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address. The match is
	// exact against whatever casing was stored at registration.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account entity and fills in its generated ID.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// ListByRole retrieves all accounts holding the given role.
	ListByRole(ctx context.Context, role entity.Role) ([]*entity.Account, error)

	// CountByRole counts accounts holding the given role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
