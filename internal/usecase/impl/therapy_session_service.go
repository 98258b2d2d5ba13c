package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
	"emotionai/internal/usecase"
)

// therapySessionService implements the TherapySessionUsecase interface.
type therapySessionService struct {
	txManager   repository.TransactionManager
	patientRepo repository.PatientRepository
	sessionRepo repository.TherapySessionRepository
	analyzer    service.VideoAnalyzer
	logger      *slog.Logger
}

// TherapySessionServiceParams holds dependencies for therapySessionService, injected by Fx.
type TherapySessionServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PatientRepo repository.PatientRepository
	SessionRepo repository.TherapySessionRepository
	Analyzer    service.VideoAnalyzer
	Logger      *slog.Logger
}

// NewTherapySessionService is the constructor for therapySessionService.
func NewTherapySessionService(params TherapySessionServiceParams) usecase.TherapySessionUsecase {
	return &therapySessionService{
		txManager:   params.TxManager,
		patientRepo: params.PatientRepo,
		sessionRepo: params.SessionRepo,
		analyzer:    params.Analyzer,
		logger:      params.Logger,
	}
}

func (srv *therapySessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requirePatient verifies the patient exists and belongs to the account.
func (srv *therapySessionService) requirePatient(ctx context.Context, account *entity.Account, patientID int64) error {
	_, err := srv.patientRepo.FindByID(ctx, patientID, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return errors.Wrap(domainerrors.ErrPatientNotFound, "patient not found")
		}

		return errors.Wrap(err, "failed to verify patient ownership")
	}

	return nil
}

// Create records a therapy session for an owned patient.
func (srv *therapySessionService) Create(ctx context.Context, account *entity.Account, patientID int64, input *usecase.CreateSessionInput) (*entity.TherapySession, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	session := &entity.TherapySession{
		PatientID: patientID,
		Date:      input.Date,
		Results:   input.Results,
	}

	if err := srv.sessionRepo.Create(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to create therapy session", slog.Int64("patientID", patientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create therapy session")
	}

	return session, nil
}

// List retrieves all sessions of an owned patient ordered by date.
func (srv *therapySessionService) List(ctx context.Context, account *entity.Account, patientID int64) ([]*entity.TherapySession, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	sessions, err := srv.sessionRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list therapy sessions")
	}

	return sessions, nil
}

// Get retrieves a single session of an owned patient.
func (srv *therapySessionService) Get(ctx context.Context, account *entity.Account, patientID, sessionID int64) (*entity.TherapySession, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	session, err := srv.sessionRepo.FindByID(ctx, sessionID, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrSessionNotFound, "therapy session not found")
		}

		return nil, errors.Wrap(err, "failed to find therapy session")
	}

	return session, nil
}

// UpdateObservations replaces the therapist's observations on a session.
func (srv *therapySessionService) UpdateObservations(ctx context.Context, account *entity.Account, patientID, sessionID int64, input *usecase.UpdateObservationsInput) (*entity.TherapySession, error) {
	session, err := srv.Get(ctx, account, patientID, sessionID)
	if err != nil {
		return nil, err
	}

	session.Observations = input.Observations

	if err := srv.sessionRepo.Update(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to update therapy session", slog.Int64("sessionID", sessionID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update therapy session")
	}

	return session, nil
}

// AnalyzeAndSave proxies the uploaded video to the emotion-analysis model and
// persists its result as a new session dated now. The upstream call happens
// before any write so a model failure leaves no partial record.
func (srv *therapySessionService) AnalyzeAndSave(ctx context.Context, account *entity.Account, patientID int64, filename string, video io.Reader) (*entity.TherapySession, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Sending video for analysis", slog.Int64("patientID", patientID), slog.String("filename", filename))

	analysis, err := srv.analyzer.AnalyzeVideo(ctx, filename, video)
	if err != nil {
		srv.log(ctx).Warn("Video analysis failed", slog.Int64("patientID", patientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "video analysis failed")
	}

	results, err := json.Marshal(analysis)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode analysis results")
	}

	session := &entity.TherapySession{
		PatientID: patientID,
		Date:      time.Now().UTC(),
		Results:   string(results),
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.TherapySessionRepo().Create(ctx, session)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist analysis session", slog.Int64("patientID", patientID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist analysis session")
	}

	srv.log(ctx).Debug("Analysis session saved", slog.Int64("sessionID", session.ID))

	return session, nil
}
