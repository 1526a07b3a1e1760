package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
)

func newTestEcho() *echo.Echo {
	return NewEcho(EchoParams{
		Config: &config.Config{CORSOrigins: []string{"*"}},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestNewEcho_UnmatchedRoute(t *testing.T) {
	e := newTestEcho()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestNewEcho_PanicBecomes500(t *testing.T) {
	e := newTestEcho()
	e.GET("/boom", func(c echo.Context) error {
		panic("secret detail")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestNewEcho_TrailingSlashAndRequestID(t *testing.T) {
	e := newTestEcho()
	e.GET("/api/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestNewEcho_ValidatorInstalled(t *testing.T) {
	e := newTestEcho()
	require.NotNil(t, e.Validator)

	type req struct {
		Name string `json:"name" validate:"required"`
	}
	assert.Error(t, e.Validator.Validate(&req{}))
}
