package formulary

import (
	"context"
	"encoding/json"
	"slices"
)

// BookmarkKey is the storage key holding the serialized bookmark list.
const BookmarkKey = "excel-bookmarks"

// BookmarkSet is an immutable set of bookmarked function names. Membership
// uses exact string equality. Names keep the order they were added in.
// The zero value is an empty set.
type BookmarkSet struct {
	names []string
}

// NewBookmarkSet returns a set containing names with duplicates dropped.
func NewBookmarkSet(names ...string) BookmarkSet {
	var s BookmarkSet
	for _, name := range names {
		if !s.Has(name) {
			s.names = append(s.names, name)
		}
	}
	return s
}

// Has reports whether name is in the set.
func (s BookmarkSet) Has(name string) bool {
	return slices.Contains(s.names, name)
}

// Len returns the number of names in the set.
func (s BookmarkSet) Len() int {
	return len(s.names)
}

// Names returns a copy of the names in insertion order.
func (s BookmarkSet) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Toggle returns a new set with name removed if present, added otherwise.
// The receiver is left unchanged.
func (s BookmarkSet) Toggle(name string) BookmarkSet {
	if s.Has(name) {
		names := make([]string, 0, len(s.names)-1)
		for _, n := range s.names {
			if n != name {
				names = append(names, n)
			}
		}
		return BookmarkSet{names: names}
	}
	names := make([]string, len(s.names), len(s.names)+1)
	copy(names, s.names)
	return BookmarkSet{names: append(names, name)}
}

// Equal reports whether s and other contain the same names, in any order.
func (s BookmarkSet) Equal(other BookmarkSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, name := range s.names {
		if !other.Has(name) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a JSON array of strings.
func (s BookmarkSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

// UnmarshalJSON decodes a JSON array of strings, dropping duplicates.
func (s *BookmarkSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewBookmarkSet(names...)
	return nil
}

// BookmarkService provides read and toggle access to the user's bookmarks.
type BookmarkService interface {
	// Bookmarks returns the current set.
	Bookmarks() BookmarkSet

	// ToggleBookmark flips membership of name and returns the new set.
	// Storage failures never surface to the caller.
	ToggleBookmark(ctx context.Context, name string) BookmarkSet
}

// KVStore is durable key-value storage on the local machine.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns ENOTFOUND if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Close releases the underlying storage.
	Close() error
}
