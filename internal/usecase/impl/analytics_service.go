package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/usecase"
)

// analyticsService implements the AnalyticsUsecase interface.
type analyticsService struct {
	patientRepo repository.PatientRepository
	sessionRepo repository.TherapySessionRepository
	logger      *slog.Logger
}

// AnalyticsServiceParams holds dependencies for analyticsService, injected by Fx.
type AnalyticsServiceParams struct {
	fx.In

	PatientRepo repository.PatientRepository
	SessionRepo repository.TherapySessionRepository
	Logger      *slog.Logger
}

// NewAnalyticsService is the constructor for analyticsService.
func NewAnalyticsService(params AnalyticsServiceParams) usecase.AnalyticsUsecase {
	return &analyticsService{
		patientRepo: params.PatientRepo,
		sessionRepo: params.SessionRepo,
		logger:      params.Logger,
	}
}

func (srv *analyticsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadSessions verifies ownership and returns the patient's sessions by date.
func (srv *analyticsService) loadSessions(ctx context.Context, account *entity.Account, patientID int64) ([]*entity.TherapySession, error) {
	if _, err := srv.patientRepo.FindByID(ctx, patientID, account.ID); err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPatientNotFound, "patient not found")
		}

		return nil, errors.Wrap(err, "failed to verify patient ownership")
	}

	sessions, err := srv.sessionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list therapy sessions")
	}

	return sessions, nil
}

// EmotionSummary totals emotion counts across all of a patient's sessions.
func (srv *analyticsService) EmotionSummary(ctx context.Context, account *entity.Account, patientID int64) ([]entity.EmotionCount, error) {
	sessions, err := srv.loadSessions(ctx, account, patientID)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	for _, session := range sessions {
		for emotion, count := range srv.parseEmotions(ctx, session) {
			totals[emotion] += count
		}
	}

	return sortedCounts(totals), nil
}

// EmotionsBySession returns per-session emotion counts ordered by date.
func (srv *analyticsService) EmotionsBySession(ctx context.Context, account *entity.Account, patientID int64) ([]usecase.SessionEmotions, error) {
	sessions, err := srv.loadSessions(ctx, account, patientID)
	if err != nil {
		return nil, err
	}

	grouped := make([]usecase.SessionEmotions, 0, len(sessions))
	for _, session := range sessions {
		grouped = append(grouped, usecase.SessionEmotions{
			SessionID: session.ID,
			Date:      session.Date,
			Emotions:  sortedCounts(srv.parseEmotions(ctx, session)),
		})
	}

	return grouped, nil
}

// parseEmotions extracts emotion counts from a session's results document.
// When the document carries no emotion_summary the timeline labels are
// counted instead. An unparseable document contributes nothing.
func (srv *analyticsService) parseEmotions(ctx context.Context, session *entity.TherapySession) map[string]int {
	var analysis entity.VideoAnalysis
	if err := json.Unmarshal([]byte(session.Results), &analysis); err != nil {
		srv.log(ctx).Warn("Skipping session with unparseable results",
			slog.Int64("sessionID", session.ID),
			slog.Any("error", err),
		)

		return nil
	}

	if len(analysis.EmotionSummary) > 0 {
		return analysis.EmotionSummary
	}

	counts := make(map[string]int, len(analysis.Timeline))
	for _, emotion := range analysis.Timeline {
		counts[emotion]++
	}

	return counts
}

// sortedCounts flattens a count map into a stable, name-ordered slice.
func sortedCounts(counts map[string]int) []entity.EmotionCount {
	result := make([]entity.EmotionCount, 0, len(counts))
	for emotion, count := range counts {
		result = append(result, entity.EmotionCount{Emotion: emotion, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Emotion < result[j].Emotion })

	return result
}
