package service

import (
	"context"
	"encoding/json"
)

// AgentMessage is the payload forwarded to the conversational agent service.
type AgentMessage struct {
	Message         string                    `json:"message"`
	SessionIDs      []string                  `json:"session_ids,omitempty"`
	SessionEmotions map[string]map[string]any `json:"session_emotions,omitempty"`
}

// AgentClient is a thin pass-through client for the external agent/chat
// service. Responses are returned verbatim as raw JSON; this backend adds no
// interpretation of its own.
type AgentClient interface {
	// SendMessage forwards a chat message with optional session emotion data.
	SendMessage(ctx context.Context, msg *AgentMessage) (json.RawMessage, error)

	// ChatHistory fetches the stored conversation for a patient, optionally
	// narrowed to specific sessions.
	ChatHistory(ctx context.Context, patientID int64, sessionIDs []int64) (json.RawMessage, error)

	// AnalyzePatientData requests recommendations for the given emotion data.
	AnalyzePatientData(ctx context.Context, patientID int64, emotionData map[string]any) (json.RawMessage, error)
}
