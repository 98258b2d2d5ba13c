// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db     *gorm.DB
	cipher service.FieldCipher
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create repository
// instances that are bound to that single transaction. The field cipher is
// carried along so repositories built inside a transaction still encrypt and
// decrypt confidential columns.
type gormRepositoryFactory struct {
	tx     *gorm.DB // In GORM, a transaction object *gorm.Tx is also a *gorm.DB
	cipher service.FieldCipher
}

// AccountRepo creates an account repository instance bound to the transaction.
func (f *gormRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

// PatientRepo creates a patient repository instance bound to the transaction.
func (f *gormRepositoryFactory) PatientRepo() repository.PatientRepository {
	return NewPatientRepository(f.tx, f.cipher)
}

// TherapySessionRepo creates a therapy session repository instance bound to the transaction.
func (f *gormRepositoryFactory) TherapySessionRepo() repository.TherapySessionRepository {
	return NewTherapySessionRepository(f.tx, f.cipher)
}

// PatientNoteRepo creates a patient note repository instance bound to the transaction.
func (f *gormRepositoryFactory) PatientNoteRepo() repository.PatientNoteRepository {
	return NewPatientNoteRepository(f.tx, f.cipher)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB, cipher service.FieldCipher) repository.TransactionManager {
	return &gormTransactionManager{db: db, cipher: cipher}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// This defer block ensures that if a panic occurs within the callback function,
	// the transaction is always rolled back.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			// Re-panic to allow Fx or other middleware to handle the panic.
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx, cipher: tm.cipher}

	err := fn(factory)
	if err != nil {
		// If the business logic returns an error, roll back the transaction.
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Return the original, more meaningful business error.
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
