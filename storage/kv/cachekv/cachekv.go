// Package cachekv adds a bounded read-through cache in front of a kv.DB.
// Only point reads are cached; iterators always hit the wrapped DB.
package cachekv

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pqledger/ledger-go/storage/kv"
)

type cachedDB struct {
	kv.DB
	// writers hold mu exclusively, so that a reader can't put a value
	// into the cache that was overwritten in the meantime.
	mu    sync.RWMutex
	cache *lru.Cache[string, []byte]
}

var _ kv.DB = (*cachedDB)(nil)

// Wrap returns db with an LRU cache of size entries in front of it.
func Wrap(db kv.DB, size int) (kv.DB, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("cachekv: %w", err)
	}
	return &cachedDB{DB: db, cache: cache}, nil
}

func (c *cachedDB) Get(key []byte) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.cache.Get(string(key)); ok {
		return append([]byte{}, v...), nil
	}
	v, err := c.DB.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(string(key), append([]byte{}, v...))
	return v, nil
}

func (c *cachedDB) Put(key, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.DB.Put(key, value); err != nil {
		return err
	}
	c.cache.Remove(string(key))
	return nil
}

func (c *cachedDB) Delete(key []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.DB.Delete(key); err != nil {
		return err
	}
	c.cache.Remove(string(key))
	return nil
}

type batch struct {
	kv.Batch
	touched [][]byte
}

func (b *batch) Reset() {
	b.Batch.Reset()
	b.touched = b.touched[:0]
}

func (b *batch) Put(key, value []byte) {
	b.Batch.Put(key, value)
	b.touched = append(b.touched, key)
}

func (b *batch) Delete(key []byte) {
	b.Batch.Delete(key)
	b.touched = append(b.touched, key)
}

func (c *cachedDB) NewBatch() kv.Batch {
	return &batch{Batch: c.DB.NewBatch()}
}

func (c *cachedDB) Write(b kv.Batch) error {
	wb, ok := b.(*batch)
	if !ok {
		return fmt.Errorf("cachekv.Write: expected *cachekv.batch, got %T", b)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.DB.Write(wb.Batch); err != nil {
		return err
	}
	for _, key := range wb.touched {
		c.cache.Remove(string(key))
	}
	return nil
}

// Len returns the number of cached entries.
func Len(db kv.DB) int {
	if c, ok := db.(*cachedDB); ok {
		return c.cache.Len()
	}
	return 0
}
