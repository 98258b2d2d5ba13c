// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"emotionai/internal/delivery/http/middleware"
	"emotionai/internal/delivery/http/response"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/usecase"
)

// AuthHandler holds dependencies for account-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	// bcrypt rejects inputs over 72 bytes, so over-long passwords fail here
	// instead of surfacing as a hashing error.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type accountResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toAccountResponse(account *entity.Account) accountResponse {
	return accountResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Role:  account.Role.String(),
	}
}

// Register handles the clinic account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, tokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   "bearer",
	}, "Account registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken: output.AccessToken,
		TokenType:   "bearer",
	}, "Login successful")
}

// Logout acknowledges a logout. Tokens are stateless, so there is nothing to
// revoke server-side; clients drop the token.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully logged out"}, "Logout successful")
}

// Me returns the authenticated account's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Profile retrieved successfully")
}

// UpdateMe applies name/email changes to the authenticated account.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
	}

	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), account, &usecase.UpdateProfileInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(updated), "Profile updated successfully")
}

// AdminDashboard returns aggregate figures for administrators.
func (h *AuthHandler) AdminDashboard(c echo.Context) error {
	output, err := h.uc.AdminDashboard(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	clinicUsers := make([]accountResponse, 0, len(output.ClinicUsers))
	for _, account := range output.ClinicUsers {
		clinicUsers = append(clinicUsers, toAccountResponse(account))
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"total_users":    output.TotalClinicUsers,
		"total_patients": output.TotalPatients,
		"clinic_users":   clinicUsers,
	}, "Dashboard retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
