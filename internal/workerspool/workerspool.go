// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool runs tasks in goroutines with a limit of parallelism.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool of workers: at most MaxParallelism tasks run at the same time.
type Pool struct {
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Signaled whenever numRunning decreases.
	numRunning     int
}

// New returns a new Pool with the given parallelism. If maxParallelism is <= 0, runtime.NumCPU() is used.
func New(maxParallelism int) *Pool {
	if maxParallelism <= 0 {
		maxParallelism = runtime.NumCPU()
	}
	p := &Pool{maxParallelism: maxParallelism}
	p.cond.L = &p.mu
	return p
}

// MaxParallelism returns the maximum number of tasks running at the same time.
func (p *Pool) MaxParallelism() int {
	return p.maxParallelism
}

// WaitToStart waits until there is a worker available and starts the task in a goroutine.
func (p *Pool) WaitToStart(task func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.numRunning >= p.maxParallelism {
		p.cond.Wait()
	}
	p.numRunning++
	go func() {
		defer func() {
			p.mu.Lock()
			p.numRunning--
			p.cond.Broadcast()
			p.mu.Unlock()
		}()
		task()
	}()
}

// Wait until all started tasks are finished.
func (p *Pool) Wait() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.numRunning > 0 {
		p.cond.Wait()
	}
}

// ForEach calls fn(ii) for ii in [0, n) using the pool, and waits for all calls to finish.
func (p *Pool) ForEach(n int, fn func(ii int)) {
	for ii := range n {
		p.WaitToStart(func() { fn(ii) })
	}
	p.Wait()
}
