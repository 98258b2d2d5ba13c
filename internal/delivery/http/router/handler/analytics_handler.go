package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"emotionai/internal/delivery/http/response"
	"emotionai/internal/domain/entity"
	"emotionai/internal/usecase"
)

// AnalyticsHandler holds dependencies for emotion analytics handlers.
type AnalyticsHandler struct {
	uc     usecase.AnalyticsUsecase
	logger *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, logger: logger}
}

type emotionCountResponse struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

type sessionEmotionsResponse struct {
	SessionID int64                  `json:"session_id"`
	Date      time.Time              `json:"date"`
	Emotions  []emotionCountResponse `json:"emotions"`
}

func toEmotionCounts(counts []entity.EmotionCount) []emotionCountResponse {
	result := make([]emotionCountResponse, 0, len(counts))
	for _, count := range counts {
		result = append(result, emotionCountResponse{Emotion: count.Emotion, Count: count.Count})
	}

	return result
}

// Summary returns the patient's emotion totals across all sessions.
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.uc.EmotionSummary(c.Request().Context(), account, patientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toEmotionCounts(summary), "Emotion summary retrieved successfully")
}

// BySession returns per-session emotion counts ordered by date.
func (h *AnalyticsHandler) BySession(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	grouped, err := h.uc.EmotionsBySession(c.Request().Context(), account, patientID)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]sessionEmotionsResponse, 0, len(grouped))
	for _, group := range grouped {
		result = append(result, sessionEmotionsResponse{
			SessionID: group.SessionID,
			Date:      group.Date,
			Emotions:  toEmotionCounts(group.Emotions),
		})
	}

	return response.Success(c, http.StatusOK, result, "Emotions by session retrieved successfully")
}
