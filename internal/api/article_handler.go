package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/scriptor-api/internal/api/shared"
	"github.com/phrazzld/scriptor-api/internal/platform/logger"
	"github.com/phrazzld/scriptor-api/internal/service"
	"github.com/phrazzld/scriptor-api/internal/validation"
)

// ArticleHandler handles the generation endpoints.
type ArticleHandler struct {
	generationService service.GenerationService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(generationService service.GenerationService) *ArticleHandler {
	return &ArticleHandler{generationService: generationService}
}

// GenerateArticle handles POST /generate-article requests
func (h *ArticleHandler) GenerateArticle(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	req, err := validation.ParseArticleRequest(raw)
	if err != nil {
		HandleAPIError(w, r, err, MsgTopicRequired)
		return
	}

	result, err := h.generationService.GenerateArticle(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, MsgTopicRequired)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ArticleResponse{
		Message: MsgArticleGenerated,
		Article: result.Text,
	})
}

// GenerateArticleHTML handles POST /generate-article-html requests
func (h *ArticleHandler) GenerateArticleHTML(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeBody(w, r)
	if !ok {
		return
	}

	req, err := validation.ParseArticleHTMLRequest(raw)
	if err != nil {
		HandleAPIError(w, r, err, MsgMissingParameters)
		return
	}

	result, err := h.generationService.GenerateArticleHTML(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, MsgMissingParameters)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ArticleHTMLResponse{
		Message:    MsgHTMLGenerated,
		HTMLOutput: result.Text,
	})
}

// decodeBody reads a JSON object body. Anything else, including an empty or
// malformed body, is treated as an object with no fields so the validator
// reports the first missing field. An oversized body is answered with 413
// and the second result is false.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	raw, err := shared.DecodeJSONObject(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge, MsgBodyTooLarge, err)
			return nil, false
		}
		logger.FromContext(r.Context()).Debug("request body is not a JSON object", "error", err)
		return map[string]any{}, true
	}
	return raw, true
}
