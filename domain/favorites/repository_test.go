package favorites

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/DuyBigPP/PHIMMOI-BACKEND/pkg/apperror"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil))), mock
}

func expectMovie(mock sqlmock.Sqlmock, exists bool) {
	mock.ExpectQuery(`SELECT EXISTS \(SELECT .* FROM "movies"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(exists))
}

func TestRepository_Toggle(t *testing.T) {
	const (
		deleteSQL = `DELETE FROM "favorites" AS "f" WHERE \(user_id = .*\) AND \(movie_id = `
		insertSQL = `INSERT INTO "favorites" .* ON CONFLICT DO NOTHING`
	)

	tests := []struct {
		name   string
		expect func(mock sqlmock.Sqlmock)
		want   bool
	}{
		{
			name: "adds when absent",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(insertSQL).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "removes when present",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)
			mock.ExpectBegin()
			expectMovie(mock, true)
			tt.expect(mock)
			mock.ExpectCommit()

			got, err := repo.Toggle(context.Background(), uuid.New(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Toggle_LostInsertRace(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	expectMovie(mock, true)
	mock.ExpectExec(`DELETE FROM "favorites"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO "favorites" .* ON CONFLICT DO NOTHING`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	added, err := repo.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.False(t, added)
	assert.ErrorIs(t, err, apperror.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet(), "the concurrent winner's row must not be deleted")
}

func TestRepository_Toggle_MissingMovie(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	expectMovie(mock, false)
	mock.ExpectRollback()

	_, err := repo.Toggle(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IsFavorite(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT EXISTS \(SELECT .* FROM "favorites" AS "f"`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.IsFavorite(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, ok)
}
