package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
	"emotionai/internal/infra/persistence/model"
)

// patientNoteRepository implements the domain.PatientNoteRepository interface
// using GORM. The note text is encrypted at rest via the field codec.
type patientNoteRepository struct {
	db    *gorm.DB
	codec fieldCodec
}

// NewPatientNoteRepository is the constructor for patientNoteRepository.
func NewPatientNoteRepository(db *gorm.DB, cipher service.FieldCipher) repository.PatientNoteRepository {
	return &patientNoteRepository{db: db, codec: newFieldCodec(cipher)}
}

// Create persists a new note with its text encrypted.
func (repo *patientNoteRepository) Create(ctx context.Context, note *entity.PatientNote) error {
	noteM, err := repo.fromNoteDomain(note)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(noteM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid patient reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create patient note")
	}

	note.ID = noteM.ID
	note.CreatedAt = noteM.CreatedAt

	return nil
}

// ListByPatient retrieves all notes of a patient, oldest first.
func (repo *patientNoteRepository) ListByPatient(ctx context.Context, patientID int64) ([]*entity.PatientNote, error) {
	var models []model.PatientNoteModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patient notes")
	}

	notes := make([]*entity.PatientNote, 0, len(models))
	for i := range models {
		note, err := repo.toNoteDomain(&models[i])
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, nil
}

// --- Mapper Functions ---

func (repo *patientNoteRepository) toNoteDomain(data *model.PatientNoteModel) (*entity.PatientNote, error) {
	if data == nil {
		return nil, nil
	}

	text, err := repo.codec.decode(model.PatientNoteModel{}.TableName(), "text", data.ID, data.Text)
	if err != nil {
		return nil, err
	}

	return &entity.PatientNote{
		ID:        data.ID,
		PatientID: data.PatientID,
		Text:      text,
		CreatedAt: data.CreatedAt,
	}, nil
}

func (repo *patientNoteRepository) fromNoteDomain(data *entity.PatientNote) (*model.PatientNoteModel, error) {
	if data == nil {
		return nil, nil
	}

	text, err := repo.codec.encode(data.Text)
	if err != nil {
		return nil, err
	}

	return &model.PatientNoteModel{
		ID:        data.ID,
		PatientID: data.PatientID,
		Text:      text,
	}, nil
}
