// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package xsync implements some extra synchronization tools.
package xsync

import "sync"

// Latch is a signal that can be waited for until it is triggered.
// Once triggered it stays triggered.
type Latch struct {
	once sync.Once
	wait chan struct{}
}

// NewLatch returns an un-triggered latch.
func NewLatch() *Latch {
	return &Latch{wait: make(chan struct{})}
}

// Trigger the latch. Extra calls are no-ops.
func (l *Latch) Trigger() {
	l.once.Do(func() { close(l.wait) })
}

// Wait blocks until the latch is triggered.
func (l *Latch) Wait() {
	<-l.wait
}

// Test returns whether the latch has been triggered.
func (l *Latch) Test() bool {
	select {
	case <-l.wait:
		return true
	default:
		return false
	}
}

// WaitChan returns a channel closed when the latch triggers, to be used in a `select`.
func (l *Latch) WaitChan() <-chan struct{} {
	return l.wait
}

// ErrorLatch is a Latch triggered by an error: only the first error is kept.
type ErrorLatch struct {
	Latch
	mu  sync.Mutex
	err error
}

// NewErrorLatch returns an un-triggered ErrorLatch.
func NewErrorLatch() *ErrorLatch {
	return &ErrorLatch{Latch: Latch{wait: make(chan struct{})}}
}

// Trigger the latch with err, if it has not been triggered yet.
// It returns true if err is the one kept.
func (l *ErrorLatch) Trigger(err error) (first bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Test() {
		return false
	}
	l.err = err
	l.Latch.Trigger()
	return true
}

// Err returns the error that triggered the latch, or nil if not triggered.
func (l *ErrorLatch) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
