package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingCounter struct {
	calls int
	err   error
}

func (c *countingCounter) IncrementCommands() error {
	c.calls++
	return c.err
}

type warnCapturingLogger struct {
	cacheTestLogger
	warns int
}

func (l *warnCapturingLogger) Warnf(_ TypeEnum, _ string, _ ...interface{}) { l.warns++ }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCommandCounterMiddleware_CountsPost(t *testing.T) {
	counter := &countingCounter{}
	mw := CommandCounterMiddleware(counter, &cacheTestLogger{}, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/roster/appoint", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCommandCounterMiddleware_IgnoresGet(t *testing.T) {
	counter := &countingCounter{}
	mw := CommandCounterMiddleware(counter, &cacheTestLogger{}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/roster/list", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 0, counter.calls)
}

func TestCommandCounterMiddleware_CountsFailedCommandsToo(t *testing.T) {
	counter := &countingCounter{}
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	mw := CommandCounterMiddleware(counter, &cacheTestLogger{}, failing)

	req := httptest.NewRequest(http.MethodPost, "/roster/appoint", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCommandCounterMiddleware_CounterErrorDoesNotFailRequest(t *testing.T) {
	counter := &countingCounter{err: assert.AnError}
	logger := &warnCapturingLogger{}
	mw := CommandCounterMiddleware(counter, logger, okHandler())

	req := httptest.NewRequest(http.MethodPost, "/news", nil)
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, logger.warns)
}
