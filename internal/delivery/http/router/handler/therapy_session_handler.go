package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"emotionai/internal/delivery/http/response"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/usecase"
)

// TherapySessionHandler holds dependencies for therapy session handlers.
type TherapySessionHandler struct {
	uc     usecase.TherapySessionUsecase
	logger *slog.Logger
}

// NewTherapySessionHandler is the constructor for TherapySessionHandler, injected by Fx.
func NewTherapySessionHandler(uc usecase.TherapySessionUsecase, logger *slog.Logger) *TherapySessionHandler {
	return &TherapySessionHandler{uc: uc, logger: logger}
}

type createSessionRequest struct {
	Date    time.Time `json:"date" validate:"required"`
	Results string    `json:"results" validate:"required"`
}

type updateObservationsRequest struct {
	Observations string `json:"observations" validate:"required"`
}

type sessionResponse struct {
	ID           int64     `json:"id"`
	PatientID    int64     `json:"patient_id"`
	Date         time.Time `json:"date"`
	Results      string    `json:"results"`
	Observations string    `json:"observations,omitempty"`
}

func toSessionResponse(session *entity.TherapySession) sessionResponse {
	return sessionResponse{
		ID:           session.ID,
		PatientID:    session.PatientID,
		Date:         session.Date,
		Results:      session.Results,
		Observations: session.Observations,
	}
}

// Create records a therapy session for an owned patient.
func (h *TherapySessionHandler) Create(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input createSessionRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	session, err := h.uc.Create(c.Request().Context(), account, patientID, &usecase.CreateSessionInput{
		Date:    input.Date,
		Results: input.Results,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(session), "Session created successfully")
}

// List returns all sessions of an owned patient ordered by date.
func (h *TherapySessionHandler) List(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sessions, err := h.uc.List(c.Request().Context(), account, patientID)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]sessionResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, toSessionResponse(session))
	}

	return response.Success(c, http.StatusOK, result, "Sessions retrieved successfully")
}

// Get returns a single session of an owned patient.
func (h *TherapySessionHandler) Get(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sessionID, err := pathID(c, "sid")
	if err != nil {
		return err
	}

	session, err := h.uc.Get(c.Request().Context(), account, patientID, sessionID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(session), "Session retrieved successfully")
}

// UpdateObservations replaces the observations of a session.
func (h *TherapySessionHandler) UpdateObservations(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sessionID, err := pathID(c, "sid")
	if err != nil {
		return err
	}

	var input updateObservationsRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid observations input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	session, err := h.uc.UpdateObservations(c.Request().Context(), account, patientID, sessionID, &usecase.UpdateObservationsInput{
		Observations: input.Observations,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionResponse(session), "Observations updated successfully")
}

// Analyze uploads a session video to the emotion-analysis model and persists
// the result as a new session record.
func (h *TherapySessionHandler) Analyze(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("video file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded video")
	}
	defer file.Close()

	session, err := h.uc.AnalyzeAndSave(c.Request().Context(), account, patientID, fileHeader.Filename, file)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toSessionResponse(session), "Video analyzed successfully")
}
