// Package agentapi implements the pass-through HTTP client for the external
// conversational agent service.
package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

const defaultTimeout = 30 * time.Second

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient is the constructor for the agent service client.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.AgentClient, error) {
	if cfg.AgentAPI == nil || cfg.AgentAPI.URL == "" {
		return nil, errors.New("agent API URL is not configured")
	}

	timeout := cfg.AgentAPI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.AgentAPI.URL, "/"),
		logger:     logger,
	}, nil
}

// SendMessage forwards a chat message with optional session emotion data.
func (c *client) SendMessage(ctx context.Context, msg *service.AgentMessage) (json.RawMessage, error) {
	return c.postJSON(ctx, "/api/agent/chat", msg)
}

// ChatHistory fetches the stored conversation for a patient.
func (c *client) ChatHistory(ctx context.Context, patientID int64, sessionIDs []int64) (json.RawMessage, error) {
	endpoint := c.baseURL + "/chat/" + strconv.FormatInt(patientID, 10)
	if len(sessionIDs) > 0 {
		query := url.Values{}
		for _, id := range sessionIDs {
			query.Add("session_ids", strconv.FormatInt(id, 10))
		}
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build agent API request")
	}

	return c.do(ctx, req)
}

// AnalyzePatientData requests recommendations for the given emotion data.
func (c *client) AnalyzePatientData(ctx context.Context, patientID int64, emotionData map[string]any) (json.RawMessage, error) {
	payload := map[string]any{"emotion_data": emotionData}

	return c.postJSON(ctx, "/analyze/"+strconv.FormatInt(patientID, 10), payload)
}

func (c *client) postJSON(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode agent API payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build agent API request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(ctx, req)
}

// do executes the request and hands back the agent's JSON verbatim. This
// backend adds no interpretation of agent responses.
func (c *client) do(ctx context.Context, req *http.Request) (json.RawMessage, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "agent API responded",
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, domainerrors.ErrUpstreamBadResponse.WrapMessage("failed to read agent API response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, domainerrors.ErrUpstreamBadResponse.WithDetails(
			"agent API returned status " + resp.Status,
		)
	}

	if !json.Valid(raw) {
		return nil, domainerrors.ErrUpstreamBadResponse.WrapMessage("agent API returned invalid JSON")
	}

	return json.RawMessage(raw), nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrUpstreamTimeout.WrapMessage("agent API request timed out")
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domainerrors.ErrUpstreamTimeout.WrapMessage("agent API request timed out")
	}

	return domainerrors.ErrUpstreamUnreachable.WrapMessage(err.Error())
}
