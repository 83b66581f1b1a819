package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhiGadhave11/realtime-polling-platform/internal/config"
)

type stubDB struct {
	err error
}

func (s *stubDB) Ping(context.Context) error {
	return s.err
}

func healthContext(target string) (*httptest.ResponseRecorder, echo.Context) {
	e := echo.New()
	req := httptest.NewRequest("GET", target, nil)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestHandleLiveness(t *testing.T) {
	srv := NewServer(&config.Config{Port: "8080"}, nil, nil, &stubDB{})

	rec, c := healthContext("/health/live")
	require.NoError(t, srv.handleLiveness(c))

	assert.Equal(t, 200, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")
}

func TestHandleReadiness_Healthy(t *testing.T) {
	srv := NewServer(&config.Config{Port: "8080"}, nil, nil, &stubDB{})

	rec, c := healthContext("/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_DatabaseDown(t *testing.T) {
	srv := NewServer(&config.Config{Port: "8080"}, nil, nil, &stubDB{err: fmt.Errorf("connection refused")})

	rec, c := healthContext("/health/ready")
	require.NoError(t, srv.handleReadiness(c))

	assert.Equal(t, 503, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "postgres", body["failed_check"])
}

func TestHandleVersion(t *testing.T) {
	srv := NewServer(&config.Config{Port: "8080"}, nil, nil, &stubDB{})

	rec, c := healthContext("/version")
	require.NoError(t, srv.handleVersion(c))

	assert.Equal(t, 200, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "dev", body["version"])
	assert.NotEmpty(t, body["go_version"])
}
