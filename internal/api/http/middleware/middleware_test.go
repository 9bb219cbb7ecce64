package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestRequestID_Generated(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err, "generated id should be a uuid")
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRequestID_FromClient(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestLogging_RecordsStatusAndRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := RequestID(Logging(okHandler(), zap.New(core).Sugar()))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "/notes", fields["path"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLogging_FlushPassesThrough(t *testing.T) {
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		flusher, ok := w.(http.Flusher)
		require.True(t, ok, "wrapped writer must implement http.Flusher")
		_, _ = w.Write([]byte("x"))
		flusher.Flush()
	}), zap.NewNop().Sugar())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, w.Flushed)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(okHandler(), 1, 2, zap.NewNop().Sugar())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusTeapot, http.StatusTeapot, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_JSONBody(t *testing.T) {
	h := RateLimit(okHandler(), 1, 1, zap.NewNop().Sugar())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"detail":"Too Many Requests"}`, w.Body.String())
}
