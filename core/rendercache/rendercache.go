// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package rendercache keeps rendered markup in a fixed-capacity, least-recently-used
cache that is safe for concurrent use.

When created with compression enabled via [New], entries are stored zstd
compressed whenever that saves space and are transparently decompressed by
[Cache.Get].
*/
package rendercache

import (
	"bytes"
	"container/list"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/singleflight"
)

// ErrInvalidSize is returned by New for a non-positive capacity.
var ErrInvalidSize = errors.New("must provide a positive size")

// Cache maps keys to rendered bytes.
//
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	lock      sync.Mutex

	flights singleflight.Group

	enc *zstd.Encoder
	dec *zstd.Decoder

	hits   atomic.Uint64
	misses atomic.Uint64
}

type entry struct {
	key        string
	data       []byte
	compressed bool
}

// Stats is a snapshot of cache activity.
type Stats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// New creates a cache holding at most size entries.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
	}

	if compress {
		// Nil writer and reader allow stateless EncodeAll and DecodeAll.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("creating zstd encoder: %w", err)
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}

		c.enc, c.dec = enc, dec
	}

	return c, nil
}

// Add stores data under key and reports whether an older entry was evicted.
//
// data is copied, so callers may reuse the slice.
func (c *Cache) Add(key string, data []byte) bool {
	stored, compressed := c.pack(data)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry)
		ent.data, ent.compressed = stored, compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, data: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	if oldest := c.evictList.Back(); oldest != nil {
		c.evictList.Remove(oldest)
		delete(c.items, oldest.Value.(*entry).key)
	}

	return true
}

// Get returns a copy of the bytes stored under key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	data, ok := c.lookup(key)
	if !ok {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)

	return data, true
}

// lookup is Get without recording a hit or miss.
func (c *Cache) lookup(key string) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	c.evictList.MoveToFront(el)
	ent := *el.Value.(*entry)

	c.lock.Unlock()

	return c.unpack(ent)
}

// GetOrRender returns the cached bytes for key, calling render on a miss and
// caching its result. Errors from render are returned and not cached.
//
// Concurrent misses on one key share a single render call, which counts as
// one miss; the callers that waited for it count as hits.
func (c *Cache) GetOrRender(key string, render func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.lookup(key); ok {
		c.hits.Add(1)

		return data, nil
	}

	rendered := false

	v, err, _ := c.flights.Do(key, func() (any, error) {
		// The previous flight for key may have finished since the lookup.
		if data, ok := c.lookup(key); ok {
			return data, nil
		}

		rendered = true

		c.misses.Add(1)

		data, err := render()
		if err != nil {
			return nil, err
		}

		c.Add(key, data)

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	if !rendered {
		c.hits.Add(1)
	}

	return bytes.Clone(v.([]byte)), nil
}

// Keys returns all keys from the oldest to the newest.
func (c *Cache) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key)
	}

	return keys
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Stats returns hit and miss counters along with the entry count.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

// pack compresses data when enabled and smaller, otherwise copies it.
// The zstd encoder supports concurrent EncodeAll, so no lock is needed.
func (c *Cache) pack(data []byte) ([]byte, bool) {
	if c.enc != nil && len(data) > 0 {
		if packed := c.enc.EncodeAll(data, nil); len(packed) < len(data) {
			return packed, true
		}
	}

	return append([]byte(nil), data...), false
}

func (c *Cache) unpack(ent entry) ([]byte, bool) {
	if !ent.compressed {
		return append([]byte(nil), ent.data...), true
	}

	if c.dec == nil {
		return nil, false
	}

	data, err := c.dec.DecodeAll(ent.data, nil)
	if err != nil {
		return nil, false
	}

	return data, true
}
