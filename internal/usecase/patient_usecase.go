package usecase

import (
	"context"

	"emotionai/internal/domain/entity"
)

// CreatePatientInput defines the data required to register a patient.
type CreatePatientInput struct {
	Name string
	Age  int
}

// AddNoteInput carries the free text of a new patient note.
type AddNoteInput struct {
	Text string
}

// PatientUsecase defines patient record operations. Every operation is scoped
// to the calling account; patients of other accounts behave as if they do not
// exist.
type PatientUsecase interface {
	Create(ctx context.Context, account *entity.Account, input *CreatePatientInput) (*entity.Patient, error)
	List(ctx context.Context, account *entity.Account) ([]*entity.Patient, error)
	Get(ctx context.Context, account *entity.Account, patientID int64) (*entity.Patient, error)
	AddNote(ctx context.Context, account *entity.Account, patientID int64, input *AddNoteInput) (*entity.PatientNote, error)
	ListNotes(ctx context.Context, account *entity.Account, patientID int64) ([]*entity.PatientNote, error)
}
