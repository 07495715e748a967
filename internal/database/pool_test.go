package database

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) (*Pool, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPool(sqlx.NewDb(db, "postgres")), mock
}

func TestWithConnResultReturnsValue(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"n"}).AddRow(1))

	n, err := WithConnResult(context.Background(), pool, func(ctx context.Context, conn *sqlx.Conn) (int, error) {
		var n int
		err := conn.GetContext(ctx, &n, "SELECT 1")
		return n, err
	})

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
	// соединение вернулось в пул
	assert.Equal(t, 0, pool.DB().Stats().InUse)
}

func TestWithConnReleasesOnError(t *testing.T) {
	pool, _ := newMockPool(t)
	boom := errors.New("boom")

	err := WithConn(context.Background(), pool, func(ctx context.Context, conn *sqlx.Conn) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, pool.DB().Stats().InUse)
}

func TestWithConnReleasesOnPanic(t *testing.T) {
	pool, _ := newMockPool(t)

	assert.Panics(t, func() {
		_ = WithConn(context.Background(), pool, func(ctx context.Context, conn *sqlx.Conn) error {
			panic("boom")
		})
	})
	assert.Equal(t, 0, pool.DB().Stats().InUse)
}

func TestWithTxCommits(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO demotable").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := WithTx(context.Background(), pool, func(ctx context.Context, tx *sqlx.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, "INSERT INTO demotable (id, name) VALUES ($1, $2)", 1, "alice")
		return struct{}{}, err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO demotable").WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	_, err := WithTx(context.Background(), pool, func(ctx context.Context, tx *sqlx.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx, "INSERT INTO demotable (id, name) VALUES ($1, $2)", 1, "alice")
		return struct{}{}, err
	})

	assert.EqualError(t, err, "duplicate")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnPanicAndLogsFailure(t *testing.T) {
	pool, mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection reset"))

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = WithTx(context.Background(), pool, func(ctx context.Context, tx *sqlx.Tx) (int, error) {
			panic("boom")
		})
	})
	assert.Contains(t, logs.String(), "Ошибка отката транзакции: connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, 0, pool.DB().Stats().InUse)
}

func TestMigrateAppliesFilesInOrder(t *testing.T) {
	pool, mock := newMockPool(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "002_data.sql"), []byte("INSERT INTO locations VALUES ('bc', 'victoria')"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_schema.sql"), []byte("CREATE TABLE locations (province TEXT, city TEXT)"), 0o600))

	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE locations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO locations").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	applied, err := pool.Migrate(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecScriptMissingFile(t *testing.T) {
	pool, _ := newMockPool(t)
	err := pool.ExecScript(context.Background(), filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}
