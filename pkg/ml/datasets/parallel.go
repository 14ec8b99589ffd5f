// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package datasets

import (
	"io"
	"runtime"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/inpainting/pkg/support/xsync"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ParallelDataset yields the records of an Iterator built by several goroutines at once.
// Create it with Parallel or CustomParallel.
type ParallelDataset struct {
	it   Iterator
	name string

	// workers calling it.Yield concurrently.
	workers int

	// bufferSize of the channel of finished records.
	bufferSize int

	impl *parallelImpl

	// pin is touched at the end of long calls, so pd is not finalized during them.
	pin int64
}

var _ Iterator = (*ParallelDataset)(nil)

// parallelImpl holds the running state. It has no reference back to ParallelDataset:
// the finalizer of ParallelDataset stops the workers.
type parallelImpl struct {
	it      Iterator
	workers int

	records chan *Record
	failed  *xsync.ErrorLatch

	muCancel  sync.Mutex
	cancel    chan struct{}
	cancelled bool

	// Per epoch.
	epochDone, endEpoch chan struct{}
	workersDone         *xsync.Latch
}

// Parallel builds records of `it` concurrently, with the default number of workers and a
// buffer of the same size. `it` must be safe for concurrent use, like Sampler.
//
// Records are yielded as they are finished, so the order is not preserved. Records built
// by a Sampler don't depend on that order.
//
// Call ParallelDataset.Cancel once done, to stop the workers.
func Parallel(it Iterator) *ParallelDataset {
	pd := CustomParallel(it)
	return pd.Buffer(pd.workers).Start()
}

// CustomParallel returns a ParallelDataset over `it` to be configured with Parallelism, Buffer
// and WithName. Nothing runs until Start is called. `it` must be safe for concurrent use.
//
// Call ParallelDataset.Cancel once done, to stop the workers:
//
//	records := datasets.CustomParallel(sampler).Buffer(10).Start()
//	defer records.Cancel()
func CustomParallel(it Iterator) *ParallelDataset {
	pd := &ParallelDataset{
		it:   it,
		name: it.Name(),
	}
	pd.Parallelism(0)
	return pd
}

// Parallelism sets the number of workers. If n <= 0 it uses the number of cores plus one.
// It panics if called after Start.
func (pd *ParallelDataset) Parallelism(n int) *ParallelDataset {
	if pd.impl != nil {
		exceptions.Panicf("ParallelDataset(%s).Parallelism called after Start", pd.name)
	}
	if n <= 0 {
		n = runtime.NumCPU() + 1
	}
	pd.workers = n
	return pd
}

// WithName overrides the name, by default the name of the underlying iterator.
func (pd *ParallelDataset) WithName(name string) *ParallelDataset {
	pd.name = name
	return pd
}

// Buffer sets how many finished records can wait to be yielded, besides the one each worker
// holds. It panics if called after Start.
func (pd *ParallelDataset) Buffer(n int) *ParallelDataset {
	if pd.impl != nil {
		exceptions.Panicf("ParallelDataset(%s).Buffer called after Start", pd.name)
	}
	pd.bufferSize = n
	return pd
}

// Start the workers. It panics if called more than once.
func (pd *ParallelDataset) Start() *ParallelDataset {
	if pd.impl != nil {
		exceptions.Panicf("ParallelDataset(%s).Start called more than once", pd.name)
	}
	impl := &parallelImpl{
		it:      pd.it,
		workers: pd.workers,
		records: make(chan *Record, pd.bufferSize),
		failed:  xsync.NewErrorLatch(),
		cancel:  make(chan struct{}),
	}
	pd.impl = impl
	runtime.SetFinalizer(pd, func(pd *ParallelDataset) {
		if pd.impl != nil {
			pd.impl.stop()
		}
	})
	impl.startEpoch()
	return pd
}

// yieldSafe calls it.Yield, returning panics as errors.
func yieldSafe(it Iterator) (*Record, error) {
	var record *Record
	var err error
	panicErr := exceptions.TryCatch[error](func() {
		record, err = it.Yield()
	})
	if panicErr != nil {
		return nil, errors.WithMessagef(panicErr, "panic while yielding from %s", it.Name())
	}
	return record, err
}

// startEpoch starts the workers, which run until the iterator is exhausted, fails, or is stopped.
func (impl *parallelImpl) startEpoch() {
	impl.epochDone = make(chan struct{})
	impl.endEpoch = make(chan struct{})
	impl.workersDone = xsync.NewLatch()
	endEpoch, epochDone, workersDone := impl.endEpoch, impl.epochDone, impl.workersDone

	var wg sync.WaitGroup
	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-endEpoch:
				return
			case <-impl.cancel:
				return
			case <-impl.failed.WaitChan():
				return
			default:
			}
			record, err := yieldSafe(impl.it)
			if err == io.EOF {
				return
			}
			if err != nil {
				if impl.failed.Trigger(err) {
					klog.Errorf("ParallelDataset(%s) failed: %+v", impl.it.Name(), err)
				}
				return
			}
			select {
			case <-endEpoch:
				return
			case <-impl.cancel:
				return
			case <-impl.failed.WaitChan():
				return
			case impl.records <- record:
			}
		}
	}
	wg.Add(impl.workers)
	for range impl.workers {
		go worker()
	}
	go func() {
		wg.Wait()
		workersDone.Trigger()
		close(epochDone)
	}()
}

// stop the workers for good and wait for them.
func (impl *parallelImpl) stop() {
	impl.muCancel.Lock()
	if !impl.cancelled {
		impl.cancelled = true
		close(impl.cancel)
	}
	impl.muCancel.Unlock()
	impl.workersDone.Wait()
}

// Name implements Iterator.
func (pd *ParallelDataset) Name() string {
	return pd.name
}

// Cancel stops the workers and waits for them. Later calls to Yield return an error.
func (pd *ParallelDataset) Cancel() {
	if pd.impl != nil {
		pd.impl.stop()
	}
}

// Reset implements Iterator. Records already built are discarded, the underlying iterator is
// reset and the workers restart.
func (pd *ParallelDataset) Reset() {
	impl := pd.impl
	if impl == nil {
		klog.Warningf("ParallelDataset(%s).Reset called before Start", pd.name)
		return
	}
	select {
	case <-impl.cancel:
		klog.Warningf("ParallelDataset(%s).Reset called after Cancel", pd.name)
		return
	default:
	}

	close(impl.endEpoch)
	impl.workersDone.Wait()
	for len(impl.records) > 0 {
		<-impl.records
	}
	impl.it.Reset()
	impl.startEpoch()
	pd.pin++
}

// Yield implements Iterator. It returns io.EOF once the underlying iterator is exhausted and
// all its records were yielded.
func (pd *ParallelDataset) Yield() (record *Record, err error) {
	impl := pd.impl
	if impl == nil {
		return nil, errors.Errorf("ParallelDataset(%s).Yield called before Start", pd.name)
	}
	if err = impl.interrupted(pd.name); err != nil {
		return nil, err
	}
	select {
	case <-impl.cancel:
		return nil, impl.interrupted(pd.name)
	case <-impl.failed.WaitChan():
		return nil, impl.interrupted(pd.name)
	case record = <-impl.records:
	case <-impl.epochDone:
		// Workers are gone, but records may still be waiting.
		select {
		case record = <-impl.records:
		default:
			if err = impl.interrupted(pd.name); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
	}
	pd.pin++
	return record, nil
}

// interrupted returns an error if the dataset was cancelled or failed.
func (impl *parallelImpl) interrupted(name string) error {
	select {
	case <-impl.cancel:
		return errors.Errorf("ParallelDataset(%s) was cancelled", name)
	default:
	}
	if impl.failed.Test() {
		return impl.failed.Err()
	}
	return nil
}
