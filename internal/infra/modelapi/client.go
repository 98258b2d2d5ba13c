// Package modelapi implements the HTTP client for the external
// video-emotion-analysis model service.
package modelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"emotionai/config"
	"emotionai/internal/domain/entity"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
	"emotionai/internal/errors"
)

const (
	analyzePath    = "/video/analyze"
	defaultTimeout = 120 * time.Second
)

type client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient is the constructor for the video analyzer client.
func NewClient(cfg *config.Config, logger *slog.Logger) (service.VideoAnalyzer, error) {
	if cfg.ModelAPI == nil || cfg.ModelAPI.URL == "" {
		return nil, errors.New("model API URL is not configured")
	}

	timeout := cfg.ModelAPI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.ModelAPI.URL, "/"),
		logger:     logger,
	}, nil
}

// AnalyzeVideo uploads the video as multipart form data and decodes the
// model's structured emotion result.
func (c *client) AnalyzeVideo(ctx context.Context, filename string, video io.Reader) (*entity.VideoAnalysis, error) {
	body, contentType, err := buildMultipartBody(filename, video)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build multipart request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+analyzePath, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build model API request")
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "model API responded",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain a short prefix for the error detail without trusting the body size.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, domainerrors.ErrUpstreamBadResponse.WithDetails(
			"model API returned status " + resp.Status + ": " + string(detail),
		)
	}

	var analysis entity.VideoAnalysis
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return nil, domainerrors.ErrUpstreamBadResponse.WrapMessage("failed to decode model API response")
	}

	return &analysis, nil
}

// buildMultipartBody assembles the upload the model expects: a single "file"
// part carrying the video bytes.
func buildMultipartBody(filename string, video io.Reader) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+escapeQuotes(filename)+`"`)
	header.Set("Content-Type", "video/mp4")

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, video); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

// classifyTransportError maps transport failures onto the upstream error
// taxonomy: deadline hits become 504s, everything else a 502.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return domainerrors.ErrUpstreamTimeout.WrapMessage("model API request timed out")
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domainerrors.ErrUpstreamTimeout.WrapMessage("model API request timed out")
	}

	return domainerrors.ErrUpstreamUnreachable.WrapMessage(err.Error())
}
