package handler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"emotionai/internal/delivery/http/validator"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/errors"
)

func TestPasswordValidation_RejectsOverlongPasswords(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"minimum length", "secret", false},
		{"at bcrypt limit", strings.Repeat("a", 72), false},
		{"too short", "abc", true},
		// bcrypt caps input at 72 bytes; anything longer must be a
		// validation failure, not a hashing failure.
		{"over bcrypt limit", strings.Repeat("a", 73), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registerErr := v.Validate(&registerRequest{
				Name:     "Clinic",
				Email:    "clinic@example.com",
				Password: tt.password,
			})

			if tt.wantErr {
				assert.True(t, errors.Is(registerErr, domainerrors.ErrValidationFailed))
			} else {
				assert.NoError(t, registerErr)
			}
		})
	}
}

func TestPasswordValidation_LoginRejectsOverlongPasswords(t *testing.T) {
	v := validator.New()

	err := v.Validate(&loginRequest{
		Email:    "clinic@example.com",
		Password: strings.Repeat("a", 73),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	assert.NoError(t, v.Validate(&loginRequest{
		Email:    "clinic@example.com",
		Password: "secret123",
	}))
}
