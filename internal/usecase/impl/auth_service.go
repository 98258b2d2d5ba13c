package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
	"emotionai/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	patientRepo repository.PatientRepository
	hasher      service.PasswordHasher
	tokens      service.TokenService
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	PatientRepo  repository.PatientRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		patientRepo: params.PatientRepo,
		hasher:      params.Hasher,
		tokens:      params.TokenService,
		logger:      params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new clinic account and returns a signed bearer token.
// The uniqueness check and insert run in one transaction; the unique index on
// email backstops concurrent registrations.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	newAccount := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         entity.RoleClinic,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, findErr := accountRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check email uniqueness")
		}

		return accountRepo.Create(ctx, newAccount)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.issueToken(newAccount)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Int64("accountID", newAccount.ID))

	return &usecase.AuthOutput{AccessToken: token, Account: newAccount}, nil
}

// Login checks the credentials and returns a signed bearer token. Unknown
// email and wrong password are indistinguishable in the result.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// bcrypt check happens outside any transaction, it is CPU-bound.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.issueToken(account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Login succeeded", slog.Int64("accountID", account.ID))

	return &usecase.AuthOutput{AccessToken: token, Account: account}, nil
}

// UpdateProfile applies the name/email changes of the authenticated account.
// An email change is rejected when the new address belongs to someone else.
func (srv *authService) UpdateProfile(ctx context.Context, account *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	srv.log(ctx).Debug("Updating profile", slog.Int64("accountID", account.ID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if input.Name != nil {
			account.Name = *input.Name
		}

		if input.Email != nil && *input.Email != account.Email {
			existing, findErr := accountRepo.FindByEmail(ctx, *input.Email)
			if findErr == nil && existing.ID != account.ID {
				return errors.Wrap(domainerrors.ErrEmailAlreadyRegistered, "email already in use")
			}
			if findErr != nil && !errors.Is(findErr, repository.ErrAccountNotFound) {
				return errors.Wrap(findErr, "failed to check email uniqueness")
			}

			account.Email = *input.Email
		}

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return account, nil
}

// AdminDashboard aggregates the clinic and patient counts plus the clinic
// account list.
func (srv *authService) AdminDashboard(ctx context.Context) (*usecase.AdminDashboardOutput, error) {
	clinicCount, err := srv.accountRepo.CountByRole(ctx, entity.RoleClinic)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count clinic accounts")
	}

	patientCount, err := srv.patientRepo.CountAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count patients")
	}

	clinicUsers, err := srv.accountRepo.ListByRole(ctx, entity.RoleClinic)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clinic accounts")
	}

	return &usecase.AdminDashboardOutput{
		TotalClinicUsers: clinicCount,
		TotalPatients:    patientCount,
		ClinicUsers:      clinicUsers,
	}, nil
}

// issueToken signs a bearer token whose subject is the decimal account id.
func (srv *authService) issueToken(account *entity.Account) (string, error) {
	token, err := srv.tokens.Issue(map[string]any{"sub": account.ID})
	if err != nil {
		return "", errors.Wrap(err, "failed to issue access token")
	}

	return token, nil
}
