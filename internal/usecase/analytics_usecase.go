package usecase

import (
	"context"
	"time"

	"emotionai/internal/domain/entity"
)

// SessionEmotions groups the emotion counts of one therapy session.
type SessionEmotions struct {
	SessionID int64
	Date      time.Time
	Emotions  []entity.EmotionCount
}

// AnalyticsUsecase aggregates emotion data out of stored session results.
type AnalyticsUsecase interface {
	// EmotionSummary totals emotion counts across all of a patient's sessions.
	EmotionSummary(ctx context.Context, account *entity.Account, patientID int64) ([]entity.EmotionCount, error)

	// EmotionsBySession returns per-session emotion counts ordered by date.
	EmotionsBySession(ctx context.Context, account *entity.Account, patientID int64) ([]SessionEmotions, error)
}
