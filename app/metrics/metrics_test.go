package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/v1/posts", http.StatusOK, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/posts", http.StatusOK, 5*time.Millisecond)
	m.DeniedWrite("post")
	m.FailedAuth()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/posts", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PermissionDenied.WithLabelValues("post")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthFailures))
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.DeniedWrite("comment")
		m.FailedAuth()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.DeniedWrite("comment")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `yatube_permission_denied_total{resource="comment"} 1`)
	assert.Contains(t, rr.Body.String(), "go_goroutines")
}
