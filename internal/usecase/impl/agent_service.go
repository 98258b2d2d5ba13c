package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "emotionai/internal/delivery/context"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/repository"
	"emotionai/internal/domain/service"
	"emotionai/internal/usecase"
)

// agentService implements the AgentUsecase interface.
type agentService struct {
	patientRepo repository.PatientRepository
	agent       service.AgentClient
	logger      *slog.Logger
}

// AgentServiceParams holds dependencies for agentService, injected by Fx.
type AgentServiceParams struct {
	fx.In

	PatientRepo repository.PatientRepository
	Agent       service.AgentClient
	Logger      *slog.Logger
}

// NewAgentService is the constructor for agentService.
func NewAgentService(params AgentServiceParams) usecase.AgentUsecase {
	return &agentService{
		patientRepo: params.PatientRepo,
		agent:       params.Agent,
		logger:      params.Logger,
	}
}

func (srv *agentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// requirePatient verifies the patient belongs to the account before any data
// leaves for the agent service.
func (srv *agentService) requirePatient(ctx context.Context, account *entity.Account, patientID int64) error {
	_, err := srv.patientRepo.FindByID(ctx, patientID, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrPatientNotFound) {
			return errors.Wrap(domainerrors.ErrPatientNotFound, "patient not found")
		}

		return errors.Wrap(err, "failed to verify patient ownership")
	}

	return nil
}

// SendMessage forwards a chat message to the agent verbatim.
func (srv *agentService) SendMessage(ctx context.Context, _ *entity.Account, msg *service.AgentMessage) (json.RawMessage, error) {
	srv.log(ctx).Debug("Forwarding message to agent", slog.Int("sessionCount", len(msg.SessionIDs)))

	response, err := srv.agent.SendMessage(ctx, msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to forward message to agent")
	}

	return response, nil
}

// ChatHistory fetches the agent's stored conversation for an owned patient.
func (srv *agentService) ChatHistory(ctx context.Context, account *entity.Account, patientID int64, sessionIDs []int64) (json.RawMessage, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	response, err := srv.agent.ChatHistory(ctx, patientID, sessionIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chat history from agent")
	}

	return response, nil
}

// AnalyzePatientData requests recommendations for an owned patient's emotion data.
func (srv *agentService) AnalyzePatientData(ctx context.Context, account *entity.Account, patientID int64, emotionData map[string]any) (json.RawMessage, error) {
	if err := srv.requirePatient(ctx, account, patientID); err != nil {
		return nil, err
	}

	response, err := srv.agent.AnalyzePatientData(ctx, patientID, emotionData)
	if err != nil {
		return nil, errors.Wrap(err, "failed to request analysis from agent")
	}

	return response, nil
}
