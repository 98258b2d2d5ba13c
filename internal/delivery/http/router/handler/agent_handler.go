package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"emotionai/internal/delivery/http/response"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/usecase"
)

// AgentHandler holds dependencies for agent proxy handlers.
type AgentHandler struct {
	uc     usecase.AgentUsecase
	logger *slog.Logger
}

// NewAgentHandler is the constructor for AgentHandler, injected by Fx.
func NewAgentHandler(uc usecase.AgentUsecase, logger *slog.Logger) *AgentHandler {
	return &AgentHandler{uc: uc, logger: logger}
}

type agentMessageRequest struct {
	Message         string                    `json:"message" validate:"required"`
	SessionIDs      []string                  `json:"session_ids"`
	SessionEmotions map[string]map[string]any `json:"session_emotions"`
}

type agentAnalyzeRequest struct {
	EmotionData map[string]any `json:"emotion_data" validate:"required"`
}

// SendMessage forwards a chat message to the agent service.
func (h *AgentHandler) SendMessage(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	var input agentMessageRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid agent message input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	raw, err := h.uc.SendMessage(c.Request().Context(), account, &service.AgentMessage{
		Message:         input.Message,
		SessionIDs:      input.SessionIDs,
		SessionEmotions: input.SessionEmotions,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Raw(c, http.StatusOK, raw)
}

// ChatHistory returns the agent's stored conversation for an owned patient.
func (h *AgentHandler) ChatHistory(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "patient_id")
	if err != nil {
		return err
	}

	var sessionIDs []int64
	for _, raw := range c.QueryParams()["session_ids"] {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid session_ids query parameter")
		}
		sessionIDs = append(sessionIDs, id)
	}

	raw, err := h.uc.ChatHistory(c.Request().Context(), account, patientID, sessionIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Raw(c, http.StatusOK, raw)
}

// Analyze requests recommendations for an owned patient's emotion data.
func (h *AgentHandler) Analyze(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "patient_id")
	if err != nil {
		return err
	}

	var input agentAnalyzeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid analysis input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	raw, err := h.uc.AnalyzePatientData(c.Request().Context(), account, patientID, input.EmotionData)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Raw(c, http.StatusOK, raw)
}
