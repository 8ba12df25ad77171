package mock

import (
	"context"

	"github.com/fwojciec/formulary"
)

var _ formulary.KVStore = (*KVStore)(nil)

// KVStore is a mock implementation of formulary.KVStore.
type KVStore struct {
	GetFn   func(ctx context.Context, key string) ([]byte, error)
	PutFn   func(ctx context.Context, key string, value []byte) error
	CloseFn func() error
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.GetFn(ctx, key)
}

func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	return s.PutFn(ctx, key, value)
}

func (s *KVStore) Close() error {
	return s.CloseFn()
}
