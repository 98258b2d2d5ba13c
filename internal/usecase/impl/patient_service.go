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
	"emotionai/internal/usecase"
)

// patientService implements the PatientUsecase interface.
type patientService struct {
	patientRepo repository.PatientRepository
	noteRepo    repository.PatientNoteRepository
	logger      *slog.Logger
}

// PatientServiceParams holds dependencies for patientService, injected by Fx.
type PatientServiceParams struct {
	fx.In

	PatientRepo repository.PatientRepository
	NoteRepo    repository.PatientNoteRepository
	Logger      *slog.Logger
}

// NewPatientService is the constructor for patientService.
func NewPatientService(params PatientServiceParams) usecase.PatientUsecase {
	return &patientService{
		patientRepo: params.PatientRepo,
		noteRepo:    params.NoteRepo,
		logger:      params.Logger,
	}
}

func (srv *patientService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a new patient under the calling account.
func (srv *patientService) Create(ctx context.Context, account *entity.Account, input *usecase.CreatePatientInput) (*entity.Patient, error) {
	patient := &entity.Patient{
		Name:      input.Name,
		Age:       input.Age,
		AccountID: account.ID,
	}

	if err := srv.patientRepo.Create(ctx, patient); err != nil {
		srv.log(ctx).Error("Failed to create patient", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create patient")
	}

	srv.log(ctx).Debug("Patient created", slog.Int64("patientID", patient.ID), slog.Int64("accountID", account.ID))

	return patient, nil
}

// List retrieves all patients of the calling account.
func (srv *patientService) List(ctx context.Context, account *entity.Account) ([]*entity.Patient, error) {
	patients, err := srv.patientRepo.ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patients")
	}

	return patients, nil
}

// Get retrieves a single patient. A patient of another account yields the same
// not-found error as a missing one.
func (srv *patientService) Get(ctx context.Context, account *entity.Account, patientID int64) (*entity.Patient, error) {
	patient, err := srv.patientRepo.FindByID(ctx, patientID, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPatientNotFound, "patient not found")
		}

		return nil, errors.Wrap(err, "failed to find patient")
	}

	return patient, nil
}

// AddNote records a free-text note on a patient owned by the calling account.
func (srv *patientService) AddNote(ctx context.Context, account *entity.Account, patientID int64, input *usecase.AddNoteInput) (*entity.PatientNote, error) {
	if _, err := srv.Get(ctx, account, patientID); err != nil {
		return nil, err
	}

	note := &entity.PatientNote{
		PatientID: patientID,
		Text:      input.Text,
	}

	if err := srv.noteRepo.Create(ctx, note); err != nil {
		srv.log(ctx).Error("Failed to create patient note", slog.Int64("patientID", patientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create patient note")
	}

	return note, nil
}

// ListNotes retrieves a patient's notes, oldest first.
func (srv *patientService) ListNotes(ctx context.Context, account *entity.Account, patientID int64) ([]*entity.PatientNote, error) {
	if _, err := srv.Get(ctx, account, patientID); err != nil {
		return nil, err
	}

	notes, err := srv.noteRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patient notes")
	}

	return notes, nil
}
