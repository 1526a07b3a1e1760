package database

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
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

func TestSafeTx_RollbackAfterCommitIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := BeginSafeTx(context.Background(), db)
	require.NoError(t, err)

	require.NoError(t, tx.Commit())
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, tx.Commit(), "second commit is a no-op")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSafeTx_RollbackWithoutCommit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := BeginSafeTx(context.Background(), db)
	require.NoError(t, err)

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBeginSafeTx_Error(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	_, err := BeginSafeTx(context.Background(), db)
	assert.EqualError(t, err, "too many connections")
}

func TestQueryLoggingHook_Levels(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"failed query is an error", errors.New("relation \"moviez\" does not exist"), `"level":"ERROR","msg":"query error"`},
		{"no rows is silent", sql.ErrNoRows, ""},
		{"success is silent without debug", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			hook := &queryLoggingHook{log: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}

			hook.AfterQuery(context.Background(), &bun.QueryEvent{
				Query:     "SELECT * FROM moviez",
				StartTime: time.Now(),
				Err:       tt.err,
			})

			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
