package usecase

import (
	"context"
	"io"
	"time"

	"emotionai/internal/domain/entity"
)

// CreateSessionInput defines the data required to record a therapy session.
type CreateSessionInput struct {
	Date    time.Time
	Results string
}

// UpdateObservationsInput carries the therapist's free-text observations.
type UpdateObservationsInput struct {
	Observations string
}

// TherapySessionUsecase defines therapy session operations. All operations
// verify the patient belongs to the calling account before touching sessions.
type TherapySessionUsecase interface {
	Create(ctx context.Context, account *entity.Account, patientID int64, input *CreateSessionInput) (*entity.TherapySession, error)
	List(ctx context.Context, account *entity.Account, patientID int64) ([]*entity.TherapySession, error)
	Get(ctx context.Context, account *entity.Account, patientID, sessionID int64) (*entity.TherapySession, error)
	UpdateObservations(ctx context.Context, account *entity.Account, patientID, sessionID int64, input *UpdateObservationsInput) (*entity.TherapySession, error)

	// AnalyzeAndSave proxies the uploaded video to the emotion-analysis model
	// and persists the result as a new session dated now.
	AnalyzeAndSave(ctx context.Context, account *entity.Account, patientID int64, filename string, video io.Reader) (*entity.TherapySession, error)
}
