// Package bookmark provides the durable bookmark set on top of a key-value
// store.
package bookmark

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/fwojciec/formulary"
)

// Ensure Store implements formulary.BookmarkService.
var _ formulary.BookmarkService = (*Store)(nil)

// Store holds the current bookmark set in memory and mirrors every change to
// a KVStore under formulary.BookmarkKey. Storage failures never reach the
// caller; they are logged and the in-memory set stays authoritative.
type Store struct {
	kv     formulary.KVStore
	logger *slog.Logger

	mu  sync.RWMutex
	set formulary.BookmarkSet
}

// NewStore creates a Store backed by kv. A nil logger discards output.
func NewStore(kv formulary.KVStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// Load reads the persisted set and makes it current. A missing entry,
// unreadable storage or malformed JSON all yield the empty set.
func (s *Store) Load(ctx context.Context) formulary.BookmarkSet {
	var set formulary.BookmarkSet
	s.access("load", func() error {
		data, err := s.kv.Get(ctx, formulary.BookmarkKey)
		if err != nil {
			return err
		}
		var loaded formulary.BookmarkSet
		if err := json.Unmarshal(data, &loaded); err != nil {
			return err
		}
		set = loaded
		return nil
	})

	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
	return set
}

// Bookmarks returns the current set.
func (s *Store) Bookmarks() formulary.BookmarkSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}

// ToggleBookmark flips membership of name, persists the result and returns
// the new set.
func (s *Store) ToggleBookmark(ctx context.Context, name string) formulary.BookmarkSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = s.set.Toggle(name)
	s.persist(ctx, s.set)
	return s.set
}

// Persist overwrites the stored entry with set.
func (s *Store) Persist(ctx context.Context, set formulary.BookmarkSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.persist(ctx, set)
}

func (s *Store) persist(ctx context.Context, set formulary.BookmarkSet) {
	s.access("persist", func() error {
		data, err := json.Marshal(set)
		if err != nil {
			return err
		}
		return s.kv.Put(ctx, formulary.BookmarkKey, data)
	})
}

// access runs fn and applies the storage failure policy: an absent entry is
// silent, anything else is logged at warn level and dropped.
func (s *Store) access(op string, fn func() error) {
	err := fn()
	if err == nil || formulary.ErrorCode(err) == formulary.ENOTFOUND {
		return
	}
	s.logger.Warn("bookmark storage unavailable",
		"op", op,
		"key", formulary.BookmarkKey,
		"err", err,
	)
}
