package agentapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

func newTestClient(t *testing.T, url string) service.AgentClient {
	t.Helper()

	cfg := &config.Config{}
	cfg.AgentAPI = &config.UpstreamConfig{URL: url, Timeout: 2 * time.Second}

	agent, err := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return agent
}

func TestSendMessage_ForwardsPayloadVerbatim(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/agent/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response": "hello from agent"}`))
	}))
	defer server.Close()

	agent := newTestClient(t, server.URL)

	raw, err := agent.SendMessage(context.Background(), &service.AgentMessage{
		Message:    "how is my patient doing?",
		SessionIDs: []string{"12", "15"},
		SessionEmotions: map[string]map[string]any{
			"12": {"happy": 4.0},
		},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"response": "hello from agent"}`, string(raw))

	assert.Equal(t, "how is my patient doing?", received["message"])
	assert.Equal(t, []any{"12", "15"}, received["session_ids"])
}

func TestChatHistory_BuildsSessionQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/7", r.URL.Path)
		assert.Equal(t, []string{"1", "2"}, r.URL.Query()["session_ids"])

		_, _ = w.Write([]byte(`{"messages": []}`))
	}))
	defer server.Close()

	agent := newTestClient(t, server.URL)

	raw, err := agent.ChatHistory(context.Background(), 7, []int64{1, 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages": []}`, string(raw))
}

func TestAnalyzePatientData_WrapsEmotionData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/3", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload, "emotion_data")

		_, _ = w.Write([]byte(`{"recommendations": ["rest"]}`))
	}))
	defer server.Close()

	agent := newTestClient(t, server.URL)

	raw, err := agent.AnalyzePatientData(context.Background(), 3, map[string]any{"happy": 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"recommendations": ["rest"]}`, string(raw))
}

func TestAgentClient_UpstreamFailures(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "agent down", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		agent := newTestClient(t, server.URL)

		_, err := agent.SendMessage(context.Background(), &service.AgentMessage{Message: "hi"})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UPSTREAM_BAD_RESPONSE", appErr.ErrorCode())
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer server.Close()

		agent := newTestClient(t, server.URL)

		_, err := agent.SendMessage(context.Background(), &service.AgentMessage{Message: "hi"})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UPSTREAM_BAD_RESPONSE", appErr.ErrorCode())
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		url := server.URL
		server.Close()

		agent := newTestClient(t, url)

		_, err := agent.SendMessage(context.Background(), &service.AgentMessage{Message: "hi"})
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "UPSTREAM_UNREACHABLE", appErr.ErrorCode())
	})
}

func TestNewClient_MissingURL(t *testing.T) {
	_, err := NewClient(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
