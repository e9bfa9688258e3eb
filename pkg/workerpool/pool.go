// Package workerpool runs fire-and-forget jobs on a fixed set of goroutines.
//
// Submit never blocks: when the queue is full it returns ErrPoolFull and
// the caller decides what to drop. Jobs receive the pool's context, which
// is cancelled when Shutdown gives up waiting.
//
//	pool := workerpool.New(2, 64)
//	defer pool.Shutdown(ctx)
//
//	err := pool.Submit(func(ctx context.Context) {
//	    _ = disk.Put(ctx, path, body)
//	})
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
)

// ErrPoolFull is returned by Submit when the job queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Job is one unit of work.
type Job func(ctx context.Context)

// Pool is a bounded goroutine pool.
type Pool struct {
	jobs   chan Job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// New starts size workers sharing a queue of the given capacity. A queue
// of zero or less defaults to twice the worker count.
func New(size, queue int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queue <= 0 {
		queue = size * 2
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:   make(chan Job, queue),
		ctx:    ctx,
		cancel: cancel,
	}

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return p
}

// Submit enqueues job without blocking.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrPoolFull
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish. When
// ctx expires first, running jobs see their context cancelled and
// ctx.Err() is returned. Safe to call more than once.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

// worker drains the job channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.run(job)
	}
}

// run executes job, recovering from panics so a bad job doesn't kill the
// worker goroutine.
func (p *Pool) run(job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: job panicked", "error", fmt.Sprint(r))
		}
	}()
	job(p.ctx)
}
