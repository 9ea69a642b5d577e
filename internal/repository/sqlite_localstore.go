package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/followup/internal/db"
)

// SQLiteLocalStore implements LocalStore on the local_storage table.
type SQLiteLocalStore struct {
	db  db.DBTX
	now func() time.Time
}

// NewSQLiteLocalStore creates a LocalStore over conn, which may be a
// *sql.DB or a transaction handed out by a UnitOfWork.
func NewSQLiteLocalStore(conn db.DBTX) *SQLiteLocalStore {
	return &SQLiteLocalStore{db: conn, now: time.Now}
}

func (s *SQLiteLocalStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("local storage key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading local storage key %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteLocalStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing local storage key %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteLocalStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("removing local storage key %q: %w", key, err)
	}
	return nil
}

// GetOrEmpty returns the value for key, or "" when it is not stored.
func GetOrEmpty(ctx context.Context, s LocalStore, key string) (string, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}
