// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"emotionai/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new clinic account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput carries the optional fields of a profile update.
// Nil means "leave unchanged".
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// --- Output DTOs ---

// AuthOutput returns the signed bearer token after registration or login.
type AuthOutput struct {
	AccessToken string
	Account     *entity.Account
}

// AdminDashboardOutput aggregates the figures shown on the admin dashboard.
type AdminDashboardOutput struct {
	TotalClinicUsers int64
	TotalPatients    int64
	ClinicUsers      []*entity.Account
}

// AuthUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	UpdateProfile(ctx context.Context, account *entity.Account, input *UpdateProfileInput) (*entity.Account, error)
	AdminDashboard(ctx context.Context) (*AdminDashboardOutput, error)
}
