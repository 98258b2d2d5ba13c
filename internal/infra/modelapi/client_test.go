package modelapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

func newTestClient(t *testing.T, url string, timeout time.Duration) service.VideoAnalyzer {
	t.Helper()

	cfg := &config.Config{}
	cfg.ModelAPI = &config.UpstreamConfig{URL: url, Timeout: timeout}

	analyzer, err := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	return analyzer
}

func errorCode(t *testing.T, err error) string {
	t.Helper()

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr), "expected an AppError, got: %v", err)

	return appErr.ErrorCode()
}

func TestAnalyzeVideo_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "session.mp4", header.Filename)
		assert.Equal(t, "fake video bytes", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"emotion_summary": {"happy": 3, "sad": 1},
			"timeline": {"0.0": "happy", "1.5": "sad"}
		}`))
	}))
	defer server.Close()

	analyzer := newTestClient(t, server.URL, 5*time.Second)

	result, err := analyzer.AnalyzeVideo(context.Background(), "session.mp4", strings.NewReader("fake video bytes"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"happy": 3, "sad": 1}, result.EmotionSummary)
	assert.Equal(t, "happy", result.Timeline["0.0"])
}

func TestAnalyzeVideo_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	analyzer := newTestClient(t, server.URL, 5*time.Second)

	_, err := analyzer.AnalyzeVideo(context.Background(), "session.mp4", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_BAD_RESPONSE", errorCode(t, err))
}

func TestAnalyzeVideo_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	analyzer := newTestClient(t, server.URL, 5*time.Second)

	_, err := analyzer.AnalyzeVideo(context.Background(), "session.mp4", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_BAD_RESPONSE", errorCode(t, err))
}

func TestAnalyzeVideo_Timeout(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	analyzer := newTestClient(t, server.URL, 100*time.Millisecond)

	_, err := analyzer.AnalyzeVideo(context.Background(), "session.mp4", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_TIMEOUT", errorCode(t, err))
}

func TestAnalyzeVideo_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	url := server.URL
	server.Close()

	analyzer := newTestClient(t, url, time.Second)

	_, err := analyzer.AnalyzeVideo(context.Background(), "session.mp4", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_UNREACHABLE", errorCode(t, err))
}

func TestNewClient_MissingURL(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
