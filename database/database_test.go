package database

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./reels.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("./reels.db"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", sqliteDSN("file:x.db?cache=shared"))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(Options{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}

func TestNewRejectsSqliteReplica(t *testing.T) {
	_, err := New(Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "r.db"), ReplicaDSN: "other.db"})
	assert.Error(t, err)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", sqlite3.Error{Code: sqlite3.ErrBusy})))
	assert.True(t, IsRetryable(sqlite3.Error{Code: sqlite3.ErrLocked}))
	assert.False(t, IsRetryable(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}

func TestTransactionRollsBack(t *testing.T) {
	db, err := New(Options{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "tx.db")})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate())
	require.NoError(t, db.Ping(context.Background()))

	type counter struct {
		ID    uint
		Value int
	}
	require.NoError(t, db.AutoMigrate(&counter{}))
	require.NoError(t, db.Create(&counter{Value: 1}).Error)

	boom := errors.New("boom")
	err = Transaction(context.Background(), db.DB, func(tx *gorm.DB) error {
		if err := tx.Model(&counter{}).Where("id = ?", 1).Update("value", 2).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var got counter
	require.NoError(t, db.First(&got, 1).Error)
	assert.Equal(t, 1, got.Value)
}
