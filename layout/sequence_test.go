// Copyright (c) 2026, tracepane. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Given any interleaving of packets tagged seq=k and seq=k+1, the newest
// sequence wins after draining.
func TestSequencerDiscardsStale(t *testing.T) {
	var s Sequencer
	k := s.Next()
	k1 := s.Next()
	assert.True(t, s.IsCurrent(k1))
	assert.False(t, s.IsCurrent(k))

	packets := []uint32{k, k1, k}
	var newest uint32
	for _, seq := range packets {
		if s.IsCurrent(seq) {
			newest = seq
		}
	}
	assert.Equal(t, k1, newest)
}

func TestCacheLRUEviction(t *testing.T) {
	c := NewCache()
	for i := 0; i < CacheMax+2; i++ {
		c.Put(Key{FirstLine: i, LastLine: i}, &Slice{FirstLine: i, LastLine: i})
	}
	assert.Equal(t, CacheMax, c.Len())
	_, ok := c.Get(Key{FirstLine: 0, LastLine: 0})
	assert.False(t, ok, "oldest entry should have been evicted")
	_, ok = c.Get(Key{FirstLine: CacheMax + 1, LastLine: CacheMax + 1})
	assert.True(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	c.Put(Key{FirstLine: 0, LastLine: 10}, &Slice{})
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}
