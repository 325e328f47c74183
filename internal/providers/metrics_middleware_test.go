package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rosterd/internal/structures"

	"github.com/stretchr/testify/assert"
)

type mockMetrics struct {
	requestEndpoint string
	requestStatus   int
	requestCalls    int
	durationCalls   int
}

func (m *mockMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestEndpoint = endpoint
	m.requestStatus = status
	m.requestCalls++
}
func (m *mockMetrics) ObserveRequestDuration(endpoint string, _ time.Duration) {
	m.requestEndpoint = endpoint
	m.durationCalls++
}
func (m *mockMetrics) IncCacheHits()                        {}
func (m *mockMetrics) IncCacheMisses()                      {}
func (m *mockMetrics) ObserveSweepDuration(_ time.Duration) {}
func (m *mockMetrics) AddNewsSwept(_ int)                   {}
func (m *mockMetrics) IncWarningsIssued()                   {}
func (m *mockMetrics) IncReprimandsIssued()                 {}
func (m *mockMetrics) IncDismissals()                       {}
func (m *mockMetrics) SetRosterTotal(_ string, _ int)       {}
func (m *mockMetrics) SetNewsTotal(_ int)                   {}
func (m *mockMetrics) SetCommandsTotal(_ int)               {}

func middlewareRoutes(handler http.Handler) []structures.Route {
	return []structures.Route{
		{Url: "/roster/list", Handler: handler},
		{Url: "/roster/appoint", Handler: handler},
	}
}

func TestMetricsMiddleware_CapturesStatusAndEndpoint(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	mw := MetricsMiddleware(metrics, middlewareRoutes(handler), handler)

	req := httptest.NewRequest(http.MethodGet, "/roster/list", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, metrics.requestCalls)
	assert.Equal(t, "/roster/list", metrics.requestEndpoint)
	assert.Equal(t, http.StatusCreated, metrics.requestStatus)
	assert.Equal(t, 1, metrics.durationCalls)
}

func TestMetricsMiddleware_UnknownPathLabeledOther(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	mw := MetricsMiddleware(metrics, middlewareRoutes(handler), handler)

	req := httptest.NewRequest(http.MethodGet, "/roster/list/../../etc/passwd", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, "other", metrics.requestEndpoint)
	assert.Equal(t, http.StatusNotFound, metrics.requestStatus)
}

func TestMetricsMiddleware_DefaultStatus200(t *testing.T) {
	metrics := &mockMetrics{}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	mw := MetricsMiddleware(metrics, middlewareRoutes(handler), handler)

	req := httptest.NewRequest(http.MethodGet, "/roster/appoint", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, metrics.requestStatus)
}

func TestStatusWriter_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rr, status: http.StatusOK}

	sw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, sw.status)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
