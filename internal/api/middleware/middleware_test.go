package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/scriptor-api/internal/api/shared"
	"github.com/phrazzld/scriptor-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestTraceMiddleware(t *testing.T) {
	var traceID string
	var hasLogger bool
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		hasLogger = logger.FromContextOrDefault(r.Context(), nil) != nil
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, traceID)
	assert.Len(t, traceID, 36, "trace IDs are UUID strings")
	assert.True(t, hasLogger, "a request-scoped logger should be stored in the context")
	assert.Equal(t, traceID, rec.Header().Get(shared.TraceIDHeader))
}

func TestTraceMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}
	handler := TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen[shared.GetTraceID(r.Context())] = true
	}))

	for i := 0; i < 5; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}

	assert.Len(t, seen, 5)
}

func TestRateLimiter(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(rate.Limit(1), 2)
	t.Cleanup(rl.Stop)
	handler := rl.Middleware(okHandler())

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/generate-article", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:2222").Code)

	limited := send("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	var body map[string]any
	require.NoError(t, json.Unmarshal(limited.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body["error"])

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1111").Code, "other clients have their own budget")
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(rate.Limit(5), 1)
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	handler := CORS([]string{"https://scriptor.example.com"})(okHandler())

	req := httptest.NewRequest(http.MethodOptions, "/generate-article", nil)
	req.Header.Set("Origin", "https://scriptor.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "https://scriptor.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodPost, "/generate-article", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
