package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/repair_bot/internal/recommendation"
)

type pingerStub struct {
	err error
}

func (p pingerStub) Ping(context.Context) error {
	return p.err
}

type reporterStub recommendation.Status

func (r reporterStub) LastStatus() recommendation.Status {
	return recommendation.Status(r)
}

func serve(t *testing.T, h *HealthHandler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestHealthzOK(t *testing.T) {
	h := NewHealthHandler("postgres", pingerStub{}, func() int { return 3 }, reporterStub{}, zap.NewNop())

	rr := serve(t, h, "/healthz")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "postgres", body.Storage)
	assert.Equal(t, 3, body.Sessions)
	assert.Empty(t, body.Error)
}

func TestHealthzWithoutDatabase(t *testing.T) {
	h := NewHealthHandler("memory", nil, nil, reporterStub{}, zap.NewNop())

	rr := serve(t, h, "/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestHealthzPingFailure(t *testing.T) {
	h := NewHealthHandler("postgres", pingerStub{err: errors.New("connection refused")}, nil, reporterStub{}, zap.NewNop())

	rr := serve(t, h, "/healthz")
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var body healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "unavailable", body.Status)
	assert.Equal(t, "connection refused", body.Error)
}

func TestAdviceStatus(t *testing.T) {
	checked := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	h := NewHealthHandler("memory", nil, nil, reporterStub{
		Configured: true,
		LastError:  "deadline exceeded",
		CheckedAt:  checked,
	}, zap.NewNop())

	rr := serve(t, h, "/status/advice")
	require.Equal(t, http.StatusOK, rr.Code)

	var body adviceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Configured)
	assert.False(t, body.Available)
	assert.Equal(t, "deadline exceeded", body.LastError)
	require.NotNil(t, body.CheckedAt)
	assert.True(t, checked.Equal(*body.CheckedAt))
}

func TestAdviceStatusNeverChecked(t *testing.T) {
	h := NewHealthHandler("memory", nil, nil, reporterStub{}, zap.NewNop())

	rr := serve(t, h, "/status/advice")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "checked_at")
}

func TestUnknownRoute(t *testing.T) {
	h := NewHealthHandler("memory", nil, nil, reporterStub{}, zap.NewNop())

	rr := serve(t, h, "/metrics")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
