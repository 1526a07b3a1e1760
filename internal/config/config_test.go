package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 168*time.Hour, cfg.Auth.JWTExpiresIn)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 10, cfg.Import.BatchSize)
	assert.Equal(t, 10, cfg.Import.ProgressEvery)
	assert.Equal(t, 114, cfg.Import.LastFile)
	assert.Equal(t, "movie_details_%d.json", cfg.Import.FilePattern)
	assert.False(t, cfg.Cache.IsEnabled())
	assert.False(t, cfg.Admin.IsConfigured())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "from parts",
			cfg:  DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "movies", SSLMode: "disable"},
			want: "postgres://u:p@db:5433/movies?sslmode=disable",
		},
		{
			name: "password is escaped",
			cfg:  DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", Database: "movies", SSLMode: "require"},
			want: "postgres://u:p%40ss%2Fword@db:5432/movies?sslmode=require",
		},
		{
			name: "url wins",
			cfg:  DatabaseConfig{URL: "postgres://x@y/z", Host: "ignored"},
			want: "postgres://x@y/z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Auth:   AuthConfig{JWTSecret: "x", BcryptCost: 10},
		Import: ImportConfig{BatchSize: 10},
	}
	assert.NoError(t, valid.Validate())

	missingSecret := valid
	missingSecret.Auth.JWTSecret = ""
	assert.ErrorContains(t, missingSecret.Validate(), "JWT_SECRET")

	badBatch := valid
	badBatch.Import.BatchSize = 0
	assert.ErrorContains(t, badBatch.Validate(), "IMPORT_BATCH_SIZE")
}

func TestNewConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewConfig(log)
	assert.Error(t, err)
}
