package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope(t *testing.T) {
	attr := Scope("movies.repo")
	assert.Equal(t, "scope", attr.Key)
	assert.Equal(t, "movies.repo", attr.Value.String())
}

func TestError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"simple error", errors.New("boom")},
		{"nil error", nil},
		{"joined error", errors.Join(errors.New("outer"), errors.New("inner"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attr := Error(tt.err)
			assert.Equal(t, "error", attr.Key)
			assert.Equal(t, tt.err, attr.Value.Any())
		})
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		env      string
		enabled  slog.Level
		disabled *slog.Level
	}{
		{env: "", enabled: slog.LevelInfo, disabled: levelPtr(slog.LevelDebug)},
		{env: "debug", enabled: slog.LevelDebug},
		{env: "DeBuG", enabled: slog.LevelDebug},
		{env: "warn", enabled: slog.LevelWarn, disabled: levelPtr(slog.LevelInfo)},
		{env: "warning", enabled: slog.LevelWarn, disabled: levelPtr(slog.LevelInfo)},
		{env: "error", enabled: slog.LevelError, disabled: levelPtr(slog.LevelWarn)},
		{env: "nonsense", enabled: slog.LevelInfo, disabled: levelPtr(slog.LevelDebug)},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			t.Setenv("GO_ENV", "")

			log := NewLogger()
			require.NotNil(t, log)
			assert.True(t, log.Enabled(context.Background(), tt.enabled))
			if tt.disabled != nil {
				assert.False(t, log.Enabled(context.Background(), *tt.disabled))
			}
		})
	}
}

func TestNewLogger_ProductionUsesJSON(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GO_ENV", "production")

	log := NewLogger()
	require.NotNil(t, log)

	_, ok := log.Handler().(*slog.JSONHandler)
	assert.True(t, ok, "production logger should use the JSON handler")
}

func levelPtr(l slog.Level) *slog.Level { return &l }
