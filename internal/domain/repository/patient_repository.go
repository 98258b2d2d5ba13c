package repository

import (
	"context"
	"errors"

	"emotionai/internal/domain/entity"
)

// ErrPatientNotFound is returned when no patient matches the given id within
// the owning account. A patient belonging to another account is reported the
// same way, never as a distinct condition.
var ErrPatientNotFound = errors.New("patient not found")

// PatientRepository defines the standard operations for patient persistence.
// Every read is scoped to an owning account; there is no unscoped lookup.
type PatientRepository interface {
	// Create persists a new patient entity and fills in its generated ID.
	Create(ctx context.Context, patient *entity.Patient) error

	// FindByID retrieves a patient by id, restricted to the owning account.
	FindByID(ctx context.Context, id, accountID int64) (*entity.Patient, error)

	// ListByAccount retrieves all patients owned by the given account.
	ListByAccount(ctx context.Context, accountID int64) ([]*entity.Patient, error)

	// CountAll counts every patient across all accounts (admin dashboard).
	CountAll(ctx context.Context) (int64, error)
}

// ErrNoteNotFound is returned when no note matches the given id.
var ErrNoteNotFound = errors.New("patient note not found")

// PatientNoteRepository defines the operations for clinical note persistence.
type PatientNoteRepository interface {
	// Create persists a new note and fills in its generated ID.
	Create(ctx context.Context, note *entity.PatientNote) error

	// ListByPatient retrieves all notes of a patient, oldest first.
	ListByPatient(ctx context.Context, patientID int64) ([]*entity.PatientNote, error)
}
