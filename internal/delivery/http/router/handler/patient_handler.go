package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"emotionai/internal/delivery/http/middleware"
	"emotionai/internal/delivery/http/response"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/usecase"
)

// PatientHandler holds dependencies for patient-related handlers.
type PatientHandler struct {
	uc     usecase.PatientUsecase
	logger *slog.Logger
}

// NewPatientHandler is the constructor for PatientHandler, injected by Fx.
func NewPatientHandler(uc usecase.PatientUsecase, logger *slog.Logger) *PatientHandler {
	return &PatientHandler{uc: uc, logger: logger}
}

type createPatientRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
}

type addNoteRequest struct {
	Text string `json:"text" validate:"required"`
}

type patientResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toPatientResponse(patient *entity.Patient) patientResponse {
	return patientResponse{ID: patient.ID, Name: patient.Name, Age: patient.Age}
}

func toNoteResponse(note *entity.PatientNote) noteResponse {
	return noteResponse{ID: note.ID, PatientID: note.PatientID, Text: note.Text, CreatedAt: note.CreatedAt}
}

// requireAccount fetches the authenticated account set by the auth middleware.
func requireAccount(c echo.Context) (*entity.Account, error) {
	account, ok := middleware.GetAccount(c)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated account on request")
	}

	return account, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("invalid " + name + " path parameter")
	}

	return id, nil
}

// Create handles patient registration.
func (h *PatientHandler) Create(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	var input createPatientRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid patient input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	patient, err := h.uc.Create(c.Request().Context(), account, &usecase.CreatePatientInput{
		Name: input.Name,
		Age:  input.Age,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPatientResponse(patient), "Patient created successfully")
}

// List returns the calling account's patients.
func (h *PatientHandler) List(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patients, err := h.uc.List(c.Request().Context(), account)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]patientResponse, 0, len(patients))
	for _, patient := range patients {
		result = append(result, toPatientResponse(patient))
	}

	return response.Success(c, http.StatusOK, result, "Patients retrieved successfully")
}

// Get returns a single owned patient.
func (h *PatientHandler) Get(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	patient, err := h.uc.Get(c.Request().Context(), account, patientID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPatientResponse(patient), "Patient retrieved successfully")
}

// AddNote records a note on an owned patient.
func (h *PatientHandler) AddNote(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input addNoteRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid note input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	note, err := h.uc.AddNote(c.Request().Context(), account, patientID, &usecase.AddNoteInput{Text: input.Text})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toNoteResponse(note), "Note created successfully")
}

// ListNotes returns an owned patient's notes.
func (h *PatientHandler) ListNotes(c echo.Context) error {
	account, err := requireAccount(c)
	if err != nil {
		return err
	}

	patientID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	notes, err := h.uc.ListNotes(c.Request().Context(), account, patientID)
	if err != nil {
		return errors.WithStack(err)
	}

	result := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		result = append(result, toNoteResponse(note))
	}

	return response.Success(c, http.StatusOK, result, "Notes retrieved successfully")
}
