// Package middleware contains the echo middleware of the HTTP delivery.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/usecase"
)

// AuthMiddleware authenticates requests by resolving the bearer token into an
// account through the identity usecase.
type AuthMiddleware struct {
	identity usecase.IdentityUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(identity usecase.IdentityUsecase) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Authenticate validates the Authorization header and stores the resolved
// account on the request context. Every failure renders identically so the
// response never reveals whether an account exists.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "authorization header is not a bearer token")
		}

		account, err := m.identity.Resolve(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		c.Set(string(deliverycontext.KeyAccount), account)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated account's
// role. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(role entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, ok := GetAccount(c)
			if !ok {
				return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
			}

			if err := m.identity.RequireRole(account, role); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// GetAccount extracts the authenticated account set by Authenticate.
func GetAccount(c echo.Context) (*entity.Account, bool) {
	account, ok := c.Get(string(deliverycontext.KeyAccount)).(*entity.Account)

	return account, ok
}
