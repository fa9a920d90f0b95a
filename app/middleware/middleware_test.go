package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/app/auth"
	"yatube/app/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestID(Logger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/posts/1", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	out := buf.String()
	assert.Contains(t, out, "msg=req ")
	assert.Contains(t, out, "method=PATCH")
	assert.Contains(t, out, "path=/api/v1/posts/1")
	assert.Contains(t, out, "status=403")
	assert.Contains(t, out, "req_detail")
	assert.Contains(t, out, "***redacted***")
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, rr.Header().Get(RequestIDHeader))
}

func TestLogger_SkipsNoisyPaths(t *testing.T) {
	var buf bytes.Buffer
	handler := Logger(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Empty(t, buf.String())
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoverer(t *testing.T) {
	var buf bytes.Buffer
	handler := Recoverer(newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rr.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedHeader string
	}{
		{name: "API route", path: "/api/v1/posts", expectedHeader: "application/json"},
		{name: "short path", path: "/", expectedHeader: ""},
		{name: "health", path: "/healthz", expectedHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.expectedHeader, rr.Header().Get("Content-Type"))
		})
	}
}

func TestTrimTrailingSlash(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/api/v1/posts/", "/api/v1/posts"},
		{"/api/v1/posts/1/comments//", "/api/v1/posts/1/comments"},
		{"/api/v1/posts", "/api/v1/posts"},
		{"/", "/"},
	}
	for _, tt := range tests {
		var got string
		handler := TrimTrailingSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.URL.Path
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.in, nil))
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewTokenIssuer([]byte("k"), "yatube-test", time.Minute, time.Hour)
	m := metrics.New()
	var buf bytes.Buffer

	var identity auth.Identity
	handler := Authenticate(tokens, m, newTestLogger(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity = auth.IdentityFrom(r.Context())
	}))

	t.Run("no header is anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, identity.IsAnonymous())
	})

	t.Run("valid access token", func(t *testing.T) {
		pair, err := tokens.IssuePair("alice")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		req.Header.Set("Authorization", "Bearer "+pair.Access)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "alice", identity.Username)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("WWW-Authenticate"))
		assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures))
	})
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/api/v1/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/v1/posts/7", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodDelete, "/api/v1/posts/{id}", "204")))
}
