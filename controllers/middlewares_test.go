package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"auraapi/models"
	"auraapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRateLimiterFromConfig(t *testing.T) {
	cfg := test.Config()
	cfg.RateLimit = 1
	e := SetupServer(cfg, nil, nil, nil, zap.NewNop().Sugar())

	first := httptest.NewRecorder()
	e.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	e.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "invalid_input", response.Error)
}

func TestRateLimiterDisabled(t *testing.T) {
	e := SetupServer(test.Config(), nil, nil, nil, zap.NewNop().Sugar())

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := SetupServer(test.Config(), nil, nil, nil, zap.New(core).Sugar())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["uri"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), fields["request_id"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestPanicIsRecoveredIntoEnvelope(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := SetupServer(test.Config(), nil, nil, nil, zap.New(core).Sugar())
	e.GET("/explode", func(c echo.Context) error {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/explode", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Equal(t, "upstream_error", response.Error)
	assert.Equal(t, 1, logs.FilterMessage("Request failed").Len())
}
