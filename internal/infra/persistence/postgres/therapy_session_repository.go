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

// therapySessionRepository implements the domain.TherapySessionRepository
// interface using GORM. Results and observations are encrypted at rest via the
// field codec.
type therapySessionRepository struct {
	db    *gorm.DB
	codec fieldCodec
}

// NewTherapySessionRepository is the constructor for therapySessionRepository.
func NewTherapySessionRepository(db *gorm.DB, cipher service.FieldCipher) repository.TherapySessionRepository {
	return &therapySessionRepository{db: db, codec: newFieldCodec(cipher)}
}

// Create persists a new therapy session with its confidential columns encrypted.
func (repo *therapySessionRepository) Create(ctx context.Context, session *entity.TherapySession) error {
	sessionM, err := repo.fromSessionDomain(session)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid patient reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create therapy session")
	}

	session.ID = sessionM.ID
	session.CreatedAt = sessionM.CreatedAt
	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// FindByID retrieves a session by id, restricted to the given patient.
func (repo *therapySessionRepository) FindByID(ctx context.Context, id, patientID int64) (*entity.TherapySession, error) {
	var sessionM model.TherapySessionModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND patient_id = ?", id, patientID).
		First(&sessionM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find therapy session by id")
	}

	return repo.toSessionDomain(&sessionM)
}

// ListByPatient retrieves all sessions of a patient ordered by date.
func (repo *therapySessionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*entity.TherapySession, error) {
	var models []model.TherapySessionModel
	err := repo.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list therapy sessions")
	}

	sessions := make([]*entity.TherapySession, 0, len(models))
	for i := range models {
		session, err := repo.toSessionDomain(&models[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// Update modifies an existing session, re-encrypting the confidential columns.
func (repo *therapySessionRepository) Update(ctx context.Context, session *entity.TherapySession) error {
	sessionM, err := repo.fromSessionDomain(session)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update therapy session")
	}

	session.UpdatedAt = sessionM.UpdatedAt

	return nil
}

// --- Mapper Functions ---

// toSessionDomain decrypts the confidential columns while mapping to the domain entity.
func (repo *therapySessionRepository) toSessionDomain(data *model.TherapySessionModel) (*entity.TherapySession, error) {
	if data == nil {
		return nil, nil
	}

	table := model.TherapySessionModel{}.TableName()

	results, err := repo.codec.decode(table, "results", data.ID, data.Results)
	if err != nil {
		return nil, err
	}

	observations, err := repo.codec.decodePtr(table, "observations", data.ID, data.Observations)
	if err != nil {
		return nil, err
	}

	session := &entity.TherapySession{
		ID:        data.ID,
		PatientID: data.PatientID,
		Date:      data.Date,
		Results:   results,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
	if observations != nil {
		session.Observations = *observations
	}

	return session, nil
}

// fromSessionDomain encrypts the confidential columns while mapping to the persistence model.
func (repo *therapySessionRepository) fromSessionDomain(data *entity.TherapySession) (*model.TherapySessionModel, error) {
	if data == nil {
		return nil, nil
	}

	results, err := repo.codec.encode(data.Results)
	if err != nil {
		return nil, err
	}

	var observations *string
	if data.Observations != "" {
		observations = &data.Observations
	}
	observations, err = repo.codec.encodePtr(observations)
	if err != nil {
		return nil, err
	}

	return &model.TherapySessionModel{
		ID:           data.ID,
		PatientID:    data.PatientID,
		Date:         data.Date,
		Results:      results,
		Observations: observations,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}, nil
}
