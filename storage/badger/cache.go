package badger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/toolsearch/core"
	"github.com/poiesic/toolsearch/storage"
)

// EmbeddingCache implements storage.EmbeddingCache for BadgerDB.
type EmbeddingCache struct {
	backend     *Backend
	ownsBackend bool
}

var _ storage.EmbeddingCache = (*EmbeddingCache)(nil)

// NewEmbeddingCache creates a cache on an existing backend.
// Closing the cache leaves the backend open.
func NewEmbeddingCache(backend *Backend) (*EmbeddingCache, error) {
	if backend == nil {
		return nil, storage.ErrBackendRequired
	}
	return &EmbeddingCache{
		backend: backend,
	}, nil
}

// OpenEmbeddingCache opens a backend at path and returns a cache that owns it.
func OpenEmbeddingCache(path string, inMemory bool) (storage.EmbeddingCache, error) {
	return OpenEmbeddingCacheWithLogger(path, inMemory, slog.Default())
}

// OpenEmbeddingCacheWithLogger is OpenEmbeddingCache with an explicit logger
// for badger's own diagnostics.
func OpenEmbeddingCacheWithLogger(path string, inMemory bool, logger *slog.Logger) (storage.EmbeddingCache, error) {
	backend, err := OpenBackendWithLogger(path, inMemory, logger)
	if err != nil {
		return nil, err
	}
	return &EmbeddingCache{
		backend:     backend,
		ownsBackend: true,
	}, nil
}

// Close releases the backend if the cache opened it.
func (c *EmbeddingCache) Close() error {
	if c.ownsBackend && !c.backend.IsClosed() {
		return c.backend.Close()
	}
	return nil
}

// GetMany looks up cached vectors. Missing keys are left out of the result.
func (c *EmbeddingCache) GetMany(ctx context.Context, keys ...core.ID) (map[core.ID][]float32, error) {
	if c.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	found := make(map[core.ID][]float32, len(keys))
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for _, key := range keys {
			if err := ctx.Err(); err != nil {
				return err
			}
			vector, err := readVector(tx, makeEmbeddingKey(key))
			if err != nil {
				return err
			}
			if vector != nil {
				found[key] = vector
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// PutMany stores vectors, overwriting existing entries.
func (c *EmbeddingCache) PutMany(ctx context.Context, entries map[core.ID][]float32) error {
	if c.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	if len(entries) == 0 {
		return nil
	}

	return c.backend.WithBatch(func(wb *badger.WriteBatch) error {
		for key, vector := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := wb.Set(makeEmbeddingKey(key), storage.MarshalVector(vector)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Count returns the number of cached vectors.
func (c *EmbeddingCache) Count(ctx context.Context) (int, error) {
	if c.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(embeddingPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if _, ok := parseEmbeddingKey(iter.Item().Key()); ok {
				count++
			}
		}
		return ctx.Err()
	}, false)
	return count, err
}

// readVector reads and deserializes a vector. Returns nil, nil if the key is absent.
func readVector(tx *badger.Txn, key []byte) ([]float32, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vector []float32
	err = item.Value(func(val []byte) error {
		var err error
		vector, err = storage.UnmarshalVector(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return vector, nil
}
