package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/phrazzld/scriptor-api/internal/api/shared"
	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/platform/metrics"
	"github.com/phrazzld/scriptor-api/internal/publish"
	"github.com/phrazzld/scriptor-api/internal/validation"
)

// ArticlePublisher forwards an article downstream.
type ArticlePublisher interface {
	Publish(ctx context.Context, req domain.PublishRequest) (*publish.Response, error)
}

// PublishHandler handles POST /publish-article.
type PublishHandler struct {
	publisher ArticlePublisher
}

// NewPublishHandler creates a new PublishHandler. A nil publisher answers
// every request with 503.
func NewPublishHandler(publisher ArticlePublisher) *PublishHandler {
	return &PublishHandler{publisher: publisher}
}

// PublishArticle relays the request and passes the downstream response back
// unchanged.
func (h *PublishHandler) PublishArticle(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	req, err := validation.ParsePublishRequest(raw)
	if err != nil {
		HandleAPIError(w, r, err, MsgMissingParameters)
		return
	}

	if h.publisher == nil {
		HandleAPIError(w, r, publish.ErrNotConfigured, MsgMissingParameters)
		return
	}

	start := time.Now()
	resp, err := h.publisher.Publish(r.Context(), req)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		if !errors.Is(err, publish.ErrNotConfigured) {
			metrics.RecordPublish(metrics.StatusError, elapsed)
		}
		HandleAPIError(w, r, err, MsgMissingParameters)
		return
	}

	metrics.RecordPublish(metrics.StatusClass(resp.StatusCode), elapsed)
	shared.RespondWithRaw(w, r, resp.StatusCode, resp.ContentType, resp.Body)
}
