// Package metacache caches raw runtime metadata blobs on disk, keyed
// by genesis hash and spec version. Metadata for a given runtime never
// changes, so cached blobs have no expiry.
package metacache

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/chainx-org/chainx-cli/internal/log"
	"github.com/chainx-org/chainx-cli/pkg/types"
)

// ErrMiss is returned by Get when the cache has no entry for the
// runtime.
var ErrMiss = errors.New("metacache: miss")

// Cache is a badger-backed metadata cache.
type Cache struct {
	db *badger.DB
}

// Open opens the cache directory, creating it if needed.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("cache at %s is locked by another process: %w", dir, err)
		}
		return nil, fmt.Errorf("open cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close flushes and closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

func key(genesis types.Hash, specVersion uint32) []byte {
	return []byte(fmt.Sprintf("meta/%s/%d", genesis, specVersion))
}

// Get returns the cached metadata blob for a runtime, or ErrMiss.
func (c *Cache) Get(genesis types.Hash, specVersion uint32) ([]byte, error) {
	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(genesis, specVersion))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("metacache get: %w", err)
	}
	log.Cache.Debug().
		Str("genesis", genesis.String()).
		Uint32("spec_version", specVersion).
		Int("bytes", len(val)).
		Msg("metadata cache hit")
	return val, nil
}

// Put stores a metadata blob for a runtime.
func (c *Cache) Put(genesis types.Hash, specVersion uint32, blob []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(genesis, specVersion), blob)
	})
	if err != nil {
		return fmt.Errorf("metacache put: %w", err)
	}
	log.Cache.Debug().
		Str("genesis", genesis.String()).
		Uint32("spec_version", specVersion).
		Int("bytes", len(blob)).
		Msg("metadata cached")
	return nil
}
