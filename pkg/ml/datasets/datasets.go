// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package datasets builds inpainting, uncropping and colorization training records from images on disk.
//
// A Dataset maps an index to a Record. Iterators (Sampler, ParallelDataset, Take) walk a Dataset
// and can be combined:
//
//	ds, err := datasets.New(cfg)
//	sampler := datasets.NewSampler(ds, seed).Shuffle()
//	records := datasets.CustomParallel(sampler).Buffer(16).Start()
//	defer records.Cancel()
//	for {
//		record, err := records.Yield()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
package datasets

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"github.com/gomlx/inpainting/pkg/core/tensors"
	"github.com/pkg/errors"
)

// ErrMissingAsset is returned when an image (or the dataset root) can't be found or decoded.
var ErrMissingAsset = errors.New("missing asset")

// Dataset of training records, indexed from 0 to Len()-1.
//
// Implementations are safe for concurrent calls of Get: all per-call randomness comes from rng.
type Dataset interface {
	// Name of the dataset, for logging.
	Name() string

	// Len is the number of records.
	Len() int

	// Get builds the record at index. rng is used for mask generation and noise.
	Get(rng *rand.Rand, index int) (*Record, error)
}

// Iterator yields records until it returns io.EOF. Reset restarts it.
type Iterator interface {
	// Name of the iterator, for logging.
	Name() string

	// Yield returns the next record, or io.EOF at the end of the epoch.
	Yield() (*Record, error)

	// Reset restarts the iteration.
	Reset()
}

// Keys of Record.AsMap.
const (
	KeyGTImage   = "gt_image"
	KeyCondImage = "cond_image"
	KeyMaskImage = "mask_image"
	KeyMask      = "mask"
	KeyPath      = "path"
)

// Record is one training example. Images are shaped `[3, height, width]` with values in [-1, 1],
// the mask is shaped `[1, height, width]` with values in {0, 1}.
//
// MaskImage, Mask and Path are optional, depending on the dataset.
type Record struct {
	GTImage, CondImage *tensors.Tensor
	MaskImage, Mask    *tensors.Tensor
	Path               string
}

// AsMap returns the record keyed by the names used by the training loop
// (`gt_image`, `cond_image`, `mask_image`, `mask` and `path`). Missing entries are omitted.
func (r *Record) AsMap() map[string]any {
	m := make(map[string]any, 5)
	for key, t := range map[string]*tensors.Tensor{
		KeyGTImage:   r.GTImage,
		KeyCondImage: r.CondImage,
		KeyMaskImage: r.MaskImage,
		KeyMask:      r.Mask,
	} {
		if t != nil {
			m[key] = t
		}
	}
	if r.Path != "" {
		m[KeyPath] = r.Path
	}
	return m
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return fmt.Sprintf("Record{gt_image=%s, cond_image=%s, mask_image=%s, mask=%s, path=%q}",
		r.GTImage, r.CondImage, r.MaskImage, r.Mask, r.Path)
}

// takeIterator implements an Iterator that only yields `take` records.
type takeIterator struct {
	it          Iterator
	mu          sync.Mutex
	count, take int
}

// Take returns a wrapper to `it` that only yields `n` records.
// It is safe for concurrent use if `it` is.
func Take(it Iterator, n int) Iterator {
	return &takeIterator{
		it:   it,
		take: n,
	}
}

// Name implements Iterator.
func (t *takeIterator) Name() string {
	return fmt.Sprintf("%s [Take %d]", t.it.Name(), t.take)
}

// Reset implements Iterator.
func (t *takeIterator) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.it.Reset()
	t.count = 0
}

// Yield implements Iterator.
func (t *takeIterator) Yield() (*Record, error) {
	t.mu.Lock()
	if t.count >= t.take {
		t.mu.Unlock()
		return nil, io.EOF
	}
	t.count++
	t.mu.Unlock()
	return t.it.Yield()
}
