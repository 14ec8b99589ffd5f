// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"

	"k8s.io/klog/v2"
)

// Sampler is an Iterator over a Dataset.
//
// Each example is built with its own random number generator, derived from the seed, the epoch and
// the example index. So the records of an epoch don't depend on the order or the goroutine in
// which they are built: Sampler.Yield is safe for concurrent use, see ParallelDataset.
type Sampler struct {
	ds   Dataset
	seed uint64

	shuffle, infinite bool

	mu       sync.Mutex
	epoch    uint64
	position int
	order    []int // Permutation of indices for the epoch, if shuffling.
}

var _ Iterator = (*Sampler)(nil)

// NewSampler creates a Sampler over ds, in index order and for one epoch.
func NewSampler(ds Dataset, seed uint64) *Sampler {
	return &Sampler{ds: ds, seed: seed}
}

// Shuffle the order of the examples on each epoch.
//
// It returns the Sampler, so calls can be cascaded.
func (s *Sampler) Shuffle() *Sampler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shuffle = true
	s.lockedStartEpoch()
	return s
}

// Infinite makes the Sampler loop over the epochs, never returning io.EOF.
//
// It returns the Sampler, so calls can be cascaded.
func (s *Sampler) Infinite() *Sampler {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.infinite = true
	return s
}

// Name implements Iterator.
func (s *Sampler) Name() string {
	return fmt.Sprintf("%s [seed %d]", s.ds.Name(), s.seed)
}

// Epoch returns the current epoch, starting at 0.
func (s *Sampler) Epoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// ExampleRNG returns the random number generator used for the example index on the given epoch.
func (s *Sampler) ExampleRNG(epoch uint64, index int) *rand.Rand {
	return rand.New(rand.NewPCG(s.seed, epoch<<32^uint64(index)))
}

// lockedStartEpoch restarts the position and, if shuffling, draws the order of the epoch.
// It must be called with s.mu locked.
func (s *Sampler) lockedStartEpoch() {
	s.position = 0
	s.order = nil
	if s.shuffle {
		rng := rand.New(rand.NewPCG(s.seed^0x5DEECE66D, s.epoch))
		s.order = rng.Perm(s.ds.Len())
	}
}

// next returns the epoch and index of the next example. ok is false at the end of the epoch.
func (s *Sampler) next() (epoch uint64, index int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position >= s.ds.Len() {
		if !s.infinite || s.ds.Len() == 0 {
			return 0, 0, false
		}
		s.epoch++
		s.lockedStartEpoch()
		klog.V(2).Infof("%s: starting epoch %d", s.Name(), s.epoch)
	}
	index = s.position
	if s.order != nil {
		index = s.order[s.position]
	}
	s.position++
	return s.epoch, index, true
}

// Yield implements Iterator.
func (s *Sampler) Yield() (*Record, error) {
	epoch, index, ok := s.next()
	if !ok {
		return nil, io.EOF
	}
	return s.ds.Get(s.ExampleRNG(epoch, index), index)
}

// Reset implements Iterator. It starts the next epoch.
func (s *Sampler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.lockedStartEpoch()
}
