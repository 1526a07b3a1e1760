package importer

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/domain/movies"
	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/pgutils"
)

func newMockStore(t *testing.T) (*BunStore, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewBunStore(db), mock
}

func TestBunStore_UpsertMovie(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`INSERT INTO "movies" .*'tay-du-ky'.*` +
		` ON CONFLICT \(slug\) DO UPDATE SET name = EXCLUDED\.name, .*imdb_id = EXCLUDED\.imdb_id, updated_at = EXCLUDED\.updated_at,` +
		` view = GREATEST\(m\.view, EXCLUDED\.view\) RETURNING m\.id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := store.UpsertMovie(context.Background(), &movies.Movie{Slug: "tay-du-ky", Name: "Tây Du Ký", View: 42})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBunStore_UpsertMovie_NameConflict(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO "movies"`).
		WillReturnError(&pgconn.PgError{Code: pgutils.CodeUniqueViolation, ConstraintName: "movies_name_key"})

	_, err := store.UpsertMovie(context.Background(), &movies.Movie{Slug: "tay-du-ky-2", Name: "Tây Du Ký"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `upsert movie "tay-du-ky-2"`)
	assert.True(t, pgutils.IsUniqueViolation(err))
	assert.Equal(t, "movies_name_key", pgutils.ConstraintName(err))
}
