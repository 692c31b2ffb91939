// Copyright 2025, the uikit contributors
// SPDX-License-Identifier: AGPL-3.0-only

package rendercache

import (
	"bytes"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	for _, compress := range []bool{false, true} {
		c, err := New(3, compress)
		require.NoError(t, err)
		assert.Equal(t, 0, c.Len())
	}

	c, err := New(0, false)
	require.ErrorIs(t, err, ErrInvalidSize)
	assert.Nil(t, c)
}

func TestAddGetEvicts(t *testing.T) {
	t.Parallel()

	c, _ := New(2, false)

	assert.False(t, c.Add("a", []byte("1")))
	assert.False(t, c.Add("b", []byte("2")))

	// Touch a so b becomes the oldest.
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []byte("1"), got)

	assert.True(t, c.Add("c", []byte("3")))

	_, ok = c.Get("b")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "c"}, c.Keys())
}

func TestAddExistingKeyUpdates(t *testing.T) {
	t.Parallel()

	c, _ := New(2, false)
	c.Add("k", []byte("old"))

	assert.False(t, c.Add("k", []byte("new")))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
	assert.Equal(t, 1, c.Len())
}

func TestValuesAreCopied(t *testing.T) {
	t.Parallel()

	c, _ := New(1, false)

	in := []byte("svg")
	c.Add("k", in)
	in[0] = 'X'

	out, _ := c.Get("k")
	assert.Equal(t, []byte("svg"), out)

	out[0] = 'Y'
	again, _ := c.Get("k")
	assert.Equal(t, []byte("svg"), again)
}

func TestCompression(t *testing.T) {
	t.Parallel()

	c, _ := New(4, true)

	compressible := bytes.Repeat([]byte(`<path d="M0 0h15v15H0z"/>`), 200)
	c.Add("big", compressible)

	random := make([]byte, 4096)
	_, _ = rand.New(rand.NewSource(1)).Read(random)
	c.Add("rnd", random)

	c.lock.Lock()
	bigEnt := c.items["big"].Value.(*entry)
	rndEnt := c.items["rnd"].Value.(*entry)
	c.lock.Unlock()

	assert.True(t, bigEnt.compressed)
	assert.Less(t, len(bigEnt.data), len(compressible))
	assert.False(t, rndEnt.compressed)

	got, ok := c.Get("big")
	require.True(t, ok)
	assert.Equal(t, compressible, got)

	got, ok = c.Get("rnd")
	require.True(t, ok)
	assert.Equal(t, random, got)
}

func TestCorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	c, _ := New(1, true)
	c.Add("k", []byte("x"))

	c.lock.Lock()
	ent := c.items["k"].Value.(*entry)
	ent.compressed = true
	ent.data = []byte("not a zstd frame")
	c.lock.Unlock()

	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Misses)
}

func TestGetOrRender(t *testing.T) {
	t.Parallel()

	c, _ := New(2, true)
	calls := 0

	render := func() ([]byte, error) {
		calls++

		return []byte("<svg/>"), nil
	}

	for range 3 {
		got, err := c.GetOrRender("k", render)
		require.NoError(t, err)
		assert.Equal(t, []byte("<svg/>"), got)
	}

	assert.Equal(t, 1, calls)
	assert.Equal(t, Stats{Entries: 1, Hits: 2, Misses: 1}, c.Stats())

	boom := errors.New("boom")
	_, err := c.GetOrRender("bad", func() ([]byte, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, c.Len())
}

func TestGetOrRenderMergesConcurrentMisses(t *testing.T) {
	t.Parallel()

	c, _ := New(4, false)

	var calls atomic.Int32

	release := make(chan struct{})
	render := func() ([]byte, error) {
		calls.Add(1)
		<-release

		return []byte("<svg/>"), nil
	}

	const callers = 16

	var wg sync.WaitGroup

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			got, err := c.GetOrRender("cold", render)
			assert.NoError(t, err)
			assert.Equal(t, []byte("<svg/>"), got)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Stats{Entries: 1, Hits: callers - 1, Misses: 1}, c.Stats())
}

func TestConcurrentAccess(t *testing.T) {
	t.Parallel()

	c, _ := New(16, true)
	payload := bytes.Repeat([]byte("0123456789"), 1024)

	var wg sync.WaitGroup

	for i := range 64 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			key := "k" + strconv.Itoa(i%32)
			c.Add(key, payload)

			if got, ok := c.Get(key); ok {
				assert.Len(t, got, len(payload))
			}
		}()
	}

	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 16)
}
