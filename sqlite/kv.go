package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/formulary"
)

// Compile-time interface verification.
var _ formulary.KVStore = (*KVStore)(nil)

// KVStore implements formulary.KVStore on the kv table.
type KVStore struct {
	db  *DB
	now func() time.Time
}

// NewKVStore creates a KVStore. Closing the store closes db.
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db, now: time.Now}
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, formulary.Errorf(formulary.ENOTFOUND, "key %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key, replacing any previous value.
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return formulary.Errorf(formulary.EINVALID, "key required")
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now().UTC().Format(time.RFC3339))
	return err
}

// Close closes the underlying database.
func (s *KVStore) Close() error {
	return s.db.Close()
}
