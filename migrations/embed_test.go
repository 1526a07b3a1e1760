package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_MigrationsHaveUpAndDown(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, name := range files {
		data, err := fs.ReadFile(FS, name)
		require.NoError(t, err)
		body := string(data)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}

func TestFS_InitDeclaresCascadesAndUniqueness(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_init.sql")
	require.NoError(t, err)
	body := string(data)

	for _, want := range []string{
		"slug               text NOT NULL UNIQUE",
		"name               text NOT NULL UNIQUE",
		"UNIQUE (user_id, movie_id)",
		"PRIMARY KEY (user_id, movie_id)",
		"UNIQUE (movie_id, slug)",
		"CHECK (score BETWEEN 1 AND 5)",
	} {
		assert.Contains(t, body, want)
	}

	// Every reference to movies must cascade.
	for _, line := range strings.Split(body, "\n") {
		if strings.Contains(line, "REFERENCES movies (id)") {
			assert.Contains(t, line, "ON DELETE CASCADE", line)
		}
	}
}
