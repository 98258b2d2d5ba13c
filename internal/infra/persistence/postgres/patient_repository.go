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

// patientRepository implements the domain.PatientRepository interface using
// GORM. The patient name is confidential: it is encrypted on every write and
// decrypted on every read through the field codec, so callers only ever see
// plaintext.
type patientRepository struct {
	db    *gorm.DB
	codec fieldCodec
}

// NewPatientRepository is the constructor for patientRepository.
func NewPatientRepository(db *gorm.DB, cipher service.FieldCipher) repository.PatientRepository {
	return &patientRepository{db: db, codec: newFieldCodec(cipher)}
}

// Create persists a new patient entity with its name encrypted at rest.
func (repo *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	patientM, err := repo.fromPatientDomain(patient)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(patientM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid account reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create patient")
	}

	patient.ID = patientM.ID
	patient.CreatedAt = patientM.CreatedAt
	patient.UpdatedAt = patientM.UpdatedAt

	return nil
}

// FindByID retrieves a patient by id, restricted to the owning account. A
// patient owned by another account is indistinguishable from a missing one.
func (repo *patientRepository) FindByID(ctx context.Context, id, accountID int64) (*entity.Patient, error) {
	var patientM model.PatientModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&patientM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPatientNotFound
		}

		return nil, errors.Wrap(err, "failed to find patient by id")
	}

	return repo.toPatientDomain(&patientM)
}

// ListByAccount retrieves all patients owned by the given account.
func (repo *patientRepository) ListByAccount(ctx context.Context, accountID int64) ([]*entity.Patient, error) {
	var models []model.PatientModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list patients")
	}

	patients := make([]*entity.Patient, 0, len(models))
	for i := range models {
		patient, err := repo.toPatientDomain(&models[i])
		if err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	return patients, nil
}

// CountAll counts every patient across all accounts.
func (repo *patientRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.PatientModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count patients")
	}

	return count, nil
}

// --- Mapper Functions ---

// toPatientDomain decrypts the confidential columns while mapping to the domain entity.
func (repo *patientRepository) toPatientDomain(data *model.PatientModel) (*entity.Patient, error) {
	if data == nil {
		return nil, nil
	}

	name, err := repo.codec.decode(model.PatientModel{}.TableName(), "name", data.ID, data.Name)
	if err != nil {
		return nil, err
	}

	return &entity.Patient{
		ID:        data.ID,
		Name:      name,
		Age:       data.Age,
		AccountID: data.AccountID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// fromPatientDomain encrypts the confidential columns while mapping to the persistence model.
func (repo *patientRepository) fromPatientDomain(data *entity.Patient) (*model.PatientModel, error) {
	if data == nil {
		return nil, nil
	}

	name, err := repo.codec.encode(data.Name)
	if err != nil {
		return nil, err
	}

	return &model.PatientModel{
		ID:        data.ID,
		Name:      name,
		Age:       data.Age,
		AccountID: data.AccountID,
	}, nil
}
