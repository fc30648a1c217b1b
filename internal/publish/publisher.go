package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scriptor-api/internal/config"
	"github.com/phrazzld/scriptor-api/internal/domain"
)

// AccessKeyHeader carries the downstream credential.
const AccessKeyHeader = "x-access-key"

// maxResponseBytes caps how much of a downstream body is relayed.
const maxResponseBytes = 10 << 20

// ErrNotConfigured is returned by Publish when no target URL is configured.
var ErrNotConfigured = errors.New("publishing is not configured")

// TransportError reports that the downstream endpoint could not be reached or
// its response could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying network error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports domain.ErrTransport for every TransportError.
func (e *TransportError) Is(target error) bool {
	return target == domain.ErrTransport
}

// Response is the downstream reply, relayed verbatim.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Publisher posts articles to the configured endpoint.
type Publisher struct {
	logger    *slog.Logger
	client    *http.Client
	url       string
	accessKey string
}

// NewPublisher creates a Publisher. A nil client gets one bounded by the
// configured timeout.
func NewPublisher(logger *slog.Logger, cfg config.PublishConfig, client *http.Client) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &Publisher{
		logger:    logger,
		client:    client,
		url:       cfg.URL,
		accessKey: cfg.AccessKey,
	}
}

// Enabled reports whether a target URL is configured.
func (p *Publisher) Enabled() bool {
	return p.url != ""
}

// Publish sends req as JSON and returns whatever the endpoint answered,
// whatever its status.
func (p *Publisher) Publish(ctx context.Context, req domain.PublishRequest) (*Response, error) {
	if !p.Enabled() {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode publish request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build publish request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(AccessKeyHeader, p.accessKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			p.logger.WarnContext(ctx, "failed to close publish response body", "error", cerr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read publish response: %w", err)}
	}

	p.logger.DebugContext(ctx, "publish request completed",
		"status_code", resp.StatusCode,
		"response_bytes", len(body))

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
