package usecase

import (
	"context"

	"emotionai/internal/domain/entity"
)

// IdentityUsecase resolves a bearer token into the account it belongs to.
// It is the single entry point authentication middleware depends on.
type IdentityUsecase interface {
	// Resolve verifies the token and loads the matching account. The subject is
	// looked up as a numeric account id first, falling back to an email lookup
	// for tokens minted by older deployments. Any verification failure or
	// missing account yields an authentication error whose wire shape does not
	// reveal whether the account exists.
	Resolve(ctx context.Context, token string) (*entity.Account, error)

	// RequireRole checks that the account holds the given role.
	RequireRole(account *entity.Account, role entity.Role) error
}
