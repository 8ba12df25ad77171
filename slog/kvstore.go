package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/formulary"
)

// Ensure LoggingKVStore implements formulary.KVStore.
var _ formulary.KVStore = (*LoggingKVStore)(nil)

// LoggingKVStore wraps a KVStore with debug logging.
type LoggingKVStore struct {
	next   formulary.KVStore
	logger *slog.Logger
}

// NewLoggingKVStore creates a new LoggingKVStore.
func NewLoggingKVStore(next formulary.KVStore, logger *slog.Logger) *LoggingKVStore {
	return &LoggingKVStore{next: next, logger: logger}
}

// Get delegates to the wrapped store and logs the read.
func (s *LoggingKVStore) Get(ctx context.Context, key string) (value []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv get",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Get(ctx, key)
}

// Put delegates to the wrapped store and logs the write.
func (s *LoggingKVStore) Put(ctx context.Context, key string, value []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("kv put",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Put(ctx, key, value)
}

// Close delegates to the wrapped store.
func (s *LoggingKVStore) Close() error {
	return s.next.Close()
}
