// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
	"emotionai/internal/usecase"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	tokenService service.TokenService
	accountRepo  repository.AccountRepository
	logger       *slog.Logger
}

// IdentityServiceParams holds dependencies for identityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	TokenService service.TokenService
	AccountRepo  repository.AccountRepository
	Logger       *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		tokenService: params.TokenService,
		accountRepo:  params.AccountRepo,
		logger:       params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Resolve verifies the bearer token and loads the account it identifies.
// The canonical subject is the decimal account id; an email subject is
// accepted for tokens minted by older deployments.
func (srv *identityService) Resolve(ctx context.Context, token string) (*entity.Account, error) {
	result := srv.tokenService.Verify(token)
	if !result.Valid() {
		// The failure reason stays in the logs; the response never says why.
		srv.log(ctx).Warn("Token verification failed", slog.String("reason", string(result.Failure)))

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token verification failed")
	}

	subject := result.Claims.Subject
	if subject == "" {
		srv.log(ctx).Warn("Token carries no subject")

		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "token has no subject")
	}

	account, err := srv.lookupBySubject(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Token subject matches no account")

			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "no account for token subject")
		}

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	return account, nil
}

// lookupBySubject tries the id lookup for numeric subjects, then falls back
// to email.
func (srv *identityService) lookupBySubject(ctx context.Context, subject string) (*entity.Account, error) {
	if id, parseErr := strconv.ParseInt(subject, 10, 64); parseErr == nil {
		account, err := srv.accountRepo.FindByID(ctx, id)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(err, "failed to find account by id")
		}
	}

	account, err := srv.accountRepo.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return account, nil
}

// RequireRole checks that the account holds the given role.
func (srv *identityService) RequireRole(account *entity.Account, role entity.Role) error {
	if account == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account")
	}

	if account.Role != role {
		return errors.Wrap(domainerrors.ErrForbidden, "account lacks required role")
	}

	return nil
}
