// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// yieldAll yields all records until io.EOF.
func yieldAll(t *testing.T, it Iterator) []*Record {
	var records []*Record
	for {
		record, err := it.Yield()
		if err == io.EOF {
			return records
		}
		require.NoError(t, err)
		records = append(records, record)
	}
}

func recordIndices(records []*Record) []int {
	indices := make([]int, len(records))
	for ii, r := range records {
		indices[ii] = must.M1(strconv.Atoi(strings.Split(r.Path, ":")[0]))
	}
	return indices
}

func TestSamplerSequential(t *testing.T) {
	sampler := NewSampler(newFakeDataset(5), 7)
	records := yieldAll(t, sampler)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, recordIndices(records))

	// Same seed, same records.
	again := yieldAll(t, NewSampler(newFakeDataset(5), 7))
	for ii := range records {
		assert.Equal(t, records[ii].Path, again[ii].Path)
	}

	// Next epoch uses different random numbers.
	sampler.Reset()
	assert.Equal(t, uint64(1), sampler.Epoch())
	nextEpoch := yieldAll(t, sampler)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, recordIndices(nextEpoch))
	assert.NotEqual(t, records[0].Path, nextEpoch[0].Path)
}

func TestSamplerShuffle(t *testing.T) {
	const n = 50
	sampler := NewSampler(newFakeDataset(n), 11).Shuffle()
	indices := recordIndices(yieldAll(t, sampler))
	require.Len(t, indices, n)
	assert.NotEqual(t, recordIndices(yieldAll(t, NewSampler(newFakeDataset(n), 11))), indices)
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	for ii := range n {
		require.Equal(t, ii, sorted[ii])
	}

	// Same seed, same order.
	assert.Equal(t, indices, recordIndices(yieldAll(t, NewSampler(newFakeDataset(n), 11).Shuffle())))
}

func TestSamplerInfinite(t *testing.T) {
	sampler := NewSampler(newFakeDataset(3), 0).Infinite()
	records := yieldAll(t, Take(sampler, 10))
	assert.Len(t, records, 10)
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0, 1, 2, 0}, recordIndices(records))
	assert.Equal(t, uint64(3), sampler.Epoch())

	// Empty datasets end immediately, even if infinite.
	_, err := NewSampler(newFakeDataset(0), 0).Infinite().Yield()
	require.Equal(t, io.EOF, err)
}

func TestTake(t *testing.T) {
	it := Take(NewSampler(newFakeDataset(10), 0), 4)
	assert.Equal(t, "fake [seed 0] [Take 4]", it.Name())
	assert.Len(t, yieldAll(t, it), 4)
	it.Reset()
	assert.Len(t, yieldAll(t, it), 4)
}

func TestSamplerMasksDeterministic(t *testing.T) {
	root := makeImageDir(t, 4, 32, 32)
	cfg := &Config{DataRoot: root, ImageSize: []int{32, 32}, MaskConfig: map[string]any{"mask_mode": "free_form"}}
	run := func() []*Record {
		return yieldAll(t, NewSampler(must.M1(NewInpaint(cfg)), 5))
	}
	first, second := run(), run()
	require.Len(t, first, 4)
	for ii := range first {
		assert.True(t, first[ii].Mask.Equal(second[ii].Mask))
		assert.True(t, first[ii].CondImage.Equal(second[ii].CondImage))
	}
	assert.False(t, first[0].Mask.Equal(first[1].Mask) && first[1].Mask.Equal(first[2].Mask))
}
