// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides the persistent worker pool that executes the
// chunks of an elementwise kernel invocation. A Pool is created once and
// reused across invocations; the caller blocks on a join barrier until every
// dispatched task has finished. There is no cancellation: once dispatched, a
// batch runs to completion.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.Run(len(chunks), func(i int) {
//	    kernel(chunks[i].Begin, chunks[i].End)
//	})
package workerpool

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem is a single task of a batch. Every task of the batch shares the
// barrier and the slot recording the first fault.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
	fault   *atomic.Pointer[PanicError]
}

// PanicError carries a panic raised by a task on a worker goroutine. Run
// re-panics with it on the calling goroutine once the whole batch is done.
type PanicError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the stack of the worker goroutine at the time of the panic.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.run()
	}
}

func (item workItem) run() {
	defer item.barrier.Done()
	defer func() {
		if r := recover(); r != nil {
			item.fault.CompareAndSwap(nil, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()
	item.fn()
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe. A closed pool runs every batch
// sequentially on the caller.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Run executes fn(i) for every task index in [0, tasks) and blocks until all
// of them have returned. Tasks are independent; their order is unspecified.
//
// A single task, a single-worker pool, or a closed pool runs inline on the
// caller. Otherwise a panic in any task does not stop the others: the first
// one is captured and re-raised on the caller as a *PanicError after the
// barrier.
func (p *Pool) Run(tasks int, fn func(task int)) {
	if tasks <= 0 {
		return
	}

	if tasks == 1 || p.numWorkers == 1 || p.closed.Load() {
		for i := range tasks {
			fn(i)
		}
		return
	}

	var (
		wg    sync.WaitGroup
		fault atomic.Pointer[PanicError]
	)
	wg.Add(tasks)
	for i := range tasks {
		p.workC <- workItem{
			fn:      func() { fn(i) },
			barrier: &wg,
			fault:   &fault,
		}
	}
	wg.Wait()

	if perr := fault.Load(); perr != nil {
		panic(perr)
	}
}
