package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

func newMockDB(t *testing.T) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUpsert_Statements(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		key     string
		display string
		pattern string
	}{
		{
			name:    "actor ignores conflicts",
			kind:    KindActor,
			key:     "Song Kang",
			pattern: `INSERT INTO "actors" .*'Song Kang'.* ON CONFLICT \(name\) DO NOTHING`,
		},
		{
			name:    "director ignores conflicts",
			kind:    KindDirector,
			key:     " Bong Joon-ho ",
			pattern: `INSERT INTO "directors" .*'Bong Joon-ho'.* ON CONFLICT \(name\) DO NOTHING`,
		},
		{
			name:    "category refreshes name",
			kind:    KindCategory,
			key:     "hanh-dong",
			display: "Hành Động",
			pattern: `INSERT INTO "categories" .*'hanh-dong'.* ON CONFLICT \(slug\) DO UPDATE SET name = EXCLUDED.name`,
		},
		{
			name:    "country without name uses slug",
			kind:    KindCountry,
			key:     "han-quoc",
			pattern: `INSERT INTO "countries" .*'han-quoc', 'han-quoc'.* ON CONFLICT \(slug\) DO UPDATE`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(tt.pattern).WillReturnResult(sqlmock.NewResult(0, 1))

			err := Upsert(context.Background(), db, tt.kind, tt.key, tt.display)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpsert_Rejects(t *testing.T) {
	db, mock := newMockDB(t)

	assert.Error(t, Upsert(context.Background(), db, KindActor, "   ", ""))
	assert.Error(t, Upsert(context.Background(), db, Kind("studio"), "x", ""))
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement is sent")
}

func TestUpsert_WrapsStoreError(t *testing.T) {
	db, mock := newMockDB(t)
	storeErr := errors.New("connection reset")
	mock.ExpectExec(`INSERT INTO "actors"`).WillReturnError(storeErr)

	err := Upsert(context.Background(), db, KindActor, "A", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), `actor "A"`)
}

func TestLink_Statements(t *testing.T) {
	movieID := uuid.MustParse("6f1c2b1e-8a4d-4a8e-9a38-0c2f0d1b2a3c")

	tests := []struct {
		kind    Kind
		key     string
		pattern string
	}{
		{KindActor, "A", `INSERT INTO "movie_actors" .*'6f1c2b1e-8a4d-4a8e-9a38-0c2f0d1b2a3c', 'A'.* ON CONFLICT DO NOTHING`},
		{KindDirector, "D", `INSERT INTO "movie_directors" .* ON CONFLICT DO NOTHING`},
		{KindCategory, "hanh-dong", `INSERT INTO "movie_categories" .*'hanh-dong'.* ON CONFLICT DO NOTHING`},
		{KindCountry, "han-quoc", `INSERT INTO "movie_countries" .*'han-quoc'.* ON CONFLICT DO NOTHING`},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectExec(tt.pattern).WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, Link(context.Background(), db, tt.kind, movieID, tt.key))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUpsertAndLink_StopsOnUpsertFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`INSERT INTO "categories"`).WillReturnError(errors.New("boom"))

	err := UpsertAndLink(context.Background(), db, KindCategory, uuid.New(), "x", "X")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "link is not attempted")
}

func TestUnlink(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`DELETE FROM "movie_actors" .*movie_id = `).WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, Unlink(context.Background(), db, KindActor, uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlugsByIDs(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT "cat"."slug" FROM "categories" AS "cat" WHERE \(id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"slug"}).AddRow("hanh-dong").AddRow("hai-huoc"))

	slugs, err := SlugsByIDs(context.Background(), db, KindCategory, []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"hanh-dong", "hai-huoc"}, slugs)

	empty, err := SlugsByIDs(context.Background(), db, KindCountry, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = SlugsByIDs(context.Background(), db, KindActor, []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}
