package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/internal/config"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func serve(t *testing.T, h echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, h(c))
	return rec
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("dial tcp: refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{db: fakePinger{tt.pingErr}, cfg: &config.Config{}, startAt: time.Now()}

			rec := serve(t, h.Health)
			assert.Equal(t, tt.wantCode, rec.Code)

			var body HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.NotContains(t, rec.Body.String(), "refused", "ping errors are not exposed")

			rec = serve(t, h.Ready)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestDebugHiddenInProduction(t *testing.T) {
	h := &Handler{db: fakePinger{}, cfg: &config.Config{Environment: "production"}}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/debug", nil), httptest.NewRecorder())
	assert.Error(t, h.Debug(c))
}

func TestVersion(t *testing.T) {
	h := &Handler{}
	rec := serve(t, h.Version)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"goVersion"`)
}
