package repository

import (
	"context"
	"errors"

	"emotionai/internal/domain/entity"
)

// ErrSessionNotFound is returned when no therapy session matches the given id
// within the given patient.
var ErrSessionNotFound = errors.New("therapy session not found")

// TherapySessionRepository defines the operations for therapy session persistence.
// Reads are scoped to a patient; the caller is responsible for having verified
// patient ownership first.
type TherapySessionRepository interface {
	// Create persists a new therapy session and fills in its generated ID.
	Create(ctx context.Context, session *entity.TherapySession) error

	// FindByID retrieves a session by id, restricted to the given patient.
	FindByID(ctx context.Context, id, patientID int64) (*entity.TherapySession, error)

	// ListByPatient retrieves all sessions of a patient ordered by date.
	ListByPatient(ctx context.Context, patientID int64) ([]*entity.TherapySession, error)

	// Update modifies an existing session (observations, results).
	Update(ctx context.Context, session *entity.TherapySession) error
}
