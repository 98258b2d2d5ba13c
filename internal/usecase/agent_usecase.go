package usecase

import (
	"context"
	"encoding/json"

	"emotionai/internal/domain/entity"
	"emotionai/internal/domain/service"
)

// AgentUsecase fronts the external conversational agent. Patient-scoped
// operations verify ownership before forwarding; responses are returned
// verbatim.
type AgentUsecase interface {
	SendMessage(ctx context.Context, account *entity.Account, msg *service.AgentMessage) (json.RawMessage, error)
	ChatHistory(ctx context.Context, account *entity.Account, patientID int64, sessionIDs []int64) (json.RawMessage, error)
	AnalyzePatientData(ctx context.Context, account *entity.Account, patientID int64, emotionData map[string]any) (json.RawMessage, error)
}
