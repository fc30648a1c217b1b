package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/scriptor-api/internal/domain"
	"github.com/phrazzld/scriptor-api/internal/mocks"
	"github.com/phrazzld/scriptor-api/internal/publish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publishBody = `{"title":"Tides","thumbnail_url":"https://img.example.com/t.jpg","html_string":"<p>hi</p>"}`

func TestPublishArticle_PassThrough(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		resp     *publish.Response
		wantType string
		wantBody string
		wantCode int
	}{
		{
			name:     "created json",
			resp:     &publish.Response{StatusCode: http.StatusCreated, ContentType: "application/json", Body: []byte(`{"id":"1"}`)},
			wantType: "application/json",
			wantBody: `{"id":"1"}`,
			wantCode: http.StatusCreated,
		},
		{
			name:     "downstream rejection relayed",
			resp:     &publish.Response{StatusCode: http.StatusUnauthorized, ContentType: "text/plain", Body: []byte("bad key")},
			wantType: "text/plain",
			wantBody: "bad key",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "missing content type defaults to json",
			resp:     &publish.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)},
			wantType: "application/json",
			wantBody: `{}`,
			wantCode: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			publisher := &mocks.MockPublisher{Response: tc.resp}
			h := NewPublishHandler(publisher)

			req := httptest.NewRequest(http.MethodPost, "/publish-article", strings.NewReader(publishBody))
			rec := httptest.NewRecorder()
			h.PublishArticle(rec, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.wantBody, rec.Body.String())
			require.Equal(t, 1, publisher.CallCount())
			assert.Equal(t, domain.PublishRequest{
				Title:        "Tides",
				ThumbnailURL: "https://img.example.com/t.jpg",
				HTMLContent:  "<p>hi</p>",
			}, publisher.Calls[0])
		})
	}
}

func TestPublishArticle_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		publisher ArticlePublisher
		body      string
		wantCode  int
		wantError string
	}{
		{
			name:      "network failure",
			publisher: &mocks.MockPublisher{Err: &publish.TransportError{Err: errors.New("dial tcp: connection refused")}},
			body:      publishBody,
			wantCode:  http.StatusInternalServerError,
			wantError: "Network error: dial tcp: connection refused",
		},
		{
			name:      "not configured",
			publisher: &mocks.MockPublisher{Err: publish.ErrNotConfigured},
			body:      publishBody,
			wantCode:  http.StatusServiceUnavailable,
			wantError: "Publishing is not configured",
		},
		{
			name:      "nil publisher",
			publisher: nil,
			body:      publishBody,
			wantCode:  http.StatusServiceUnavailable,
			wantError: "Publishing is not configured",
		},
		{
			name:      "missing title",
			publisher: &mocks.MockPublisher{},
			body:      `{"html_string":"<p>hi</p>"}`,
			wantCode:  http.StatusBadRequest,
			wantError: "Missing required input parameters",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := NewPublishHandler(tc.publisher)

			rec, body := doRequest(t, h.PublishArticle, tc.body)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.wantError, body["error"])
		})
	}
}

func TestPublishArticle_ValidationSkipsPublisher(t *testing.T) {
	t.Parallel()

	publisher := &mocks.MockPublisher{
		PublishFn: func(ctx context.Context, req domain.PublishRequest) (*publish.Response, error) {
			t.Error("publisher should not be called")
			return nil, nil
		},
	}
	h := NewPublishHandler(publisher)

	rec, _ := doRequest(t, h.PublishArticle, `{"title":"x"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, publisher.CallCount())
}
