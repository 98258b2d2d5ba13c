package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/errors"
	"emotionai/internal/usecase"
)

type identityFixtures struct {
	service  usecase.IdentityUsecase
	accounts *fakeAccountRepo
	tokens   *fakeTokenService
}

func createTestIdentityService(t *testing.T) identityFixtures {
	t.Helper()

	accounts := newFakeAccountRepo()
	tokens := newFakeTokenService()

	service := NewIdentityService(IdentityServiceParams{
		TokenService: tokens,
		AccountRepo:  accounts,
		Logger:       discardLogger(),
	})

	return identityFixtures{service: service, accounts: accounts, tokens: tokens}
}

func TestIdentityService_Resolve_NumericSubject(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	account := &entity.Account{Name: "Clinic A", Email: "a@b.com", Role: entity.RoleClinic}
	require.NoError(t, fx.accounts.Create(ctx, account))

	token, err := fx.tokens.Issue(map[string]any{"sub": account.ID})
	require.NoError(t, err)

	resolved, err := fx.service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)
	assert.Equal(t, "a@b.com", resolved.Email)
}

func TestIdentityService_Resolve_EmailFallback(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	account := &entity.Account{Name: "Clinic A", Email: "legacy@clinic.com", Role: entity.RoleClinic}
	require.NoError(t, fx.accounts.Create(ctx, account))

	// Tokens from the older deployment carried the email as subject.
	token, err := fx.tokens.Issue(map[string]any{"sub": "legacy@clinic.com"})
	require.NoError(t, err)

	resolved, err := fx.service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)
}

func TestIdentityService_Resolve_NumericSubjectFallsBackToEmail(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	// An all-digit email is legal; when no account has that id, the email
	// lookup still runs.
	account := &entity.Account{Name: "Clinic A", Email: "12345", Role: entity.RoleClinic}
	require.NoError(t, fx.accounts.Create(ctx, account))

	token, err := fx.tokens.Issue(map[string]any{"sub": "12345"})
	require.NoError(t, err)

	resolved, err := fx.service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resolved.ID)
}

func TestIdentityService_Resolve_UnknownSubject(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	token, err := fx.tokens.Issue(map[string]any{"sub": "999"})
	require.NoError(t, err)

	_, err = fx.service.Resolve(ctx, token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestIdentityService_Resolve_InvalidToken(t *testing.T) {
	fx := createTestIdentityService(t)

	_, err := fx.service.Resolve(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestIdentityService_Resolve_EmptySubject(t *testing.T) {
	fx := createTestIdentityService(t)

	token, err := fx.tokens.Issue(map[string]any{"sub": ""})
	require.NoError(t, err)

	_, err = fx.service.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestIdentityService_Resolve_RepositoryFailure(t *testing.T) {
	fx := createTestIdentityService(t)
	ctx := context.Background()

	fx.accounts.findByEmailErr = errors.New("connection reset")

	token, err := fx.tokens.Issue(map[string]any{"sub": "someone@clinic.com"})
	require.NoError(t, err)

	_, err = fx.service.Resolve(ctx, token)
	require.Error(t, err)
	// A transient failure is not an authentication verdict.
	assert.False(t, errors.Is(err, domainerrors.ErrAccountNotFound))
	assert.False(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}

func TestIdentityService_RequireRole(t *testing.T) {
	fx := createTestIdentityService(t)

	clinic := &entity.Account{ID: 1, Role: entity.RoleClinic}
	admin := &entity.Account{ID: 2, Role: entity.RoleAdmin}

	assert.NoError(t, fx.service.RequireRole(admin, entity.RoleAdmin))
	assert.NoError(t, fx.service.RequireRole(clinic, entity.RoleClinic))

	err := fx.service.RequireRole(clinic, entity.RoleAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = fx.service.RequireRole(nil, entity.RoleAdmin)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
}
