package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so multi-step writes stay atomic.
type RepositoryFactory interface {
	// AccountRepo returns an AccountRepository bound to the current transaction.
	AccountRepo() AccountRepository

	// PatientRepo returns a PatientRepository bound to the current transaction.
	PatientRepo() PatientRepository

	// TherapySessionRepo returns a TherapySessionRepository bound to the current transaction.
	TherapySessionRepo() TherapySessionRepository

	// PatientNoteRepo returns a PatientNoteRepository bound to the current transaction.
	PatientNoteRepo() PatientNoteRepository
}
