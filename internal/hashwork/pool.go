// Package hashwork isolates deliberately expensive password hashing on
// a bounded worker pool so it cannot starve request-dispatch goroutines.
package hashwork

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
)

// ErrStopped is returned by Do once the pool has been stopped.
var ErrStopped = errors.New("hashwork: pool stopped")

// Pool runs CPU-bound jobs on a fixed number of workers. Callers block
// until a worker accepts their job; once a job starts it always runs to
// completion, even if the submitting context is abandoned mid-flight.
// Partial hashing state is not reusable, so killing it would waste the
// CPU work without benefit.
type Pool struct {
	logger *slog.Logger
	size   int
	jobs   chan func()

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// Config holds configuration for the pool.
type Config struct {
	Size   int // Number of concurrent hash workers
	Logger *slog.Logger
}

// New creates a new hash worker pool.
func New(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	size := cfg.Size
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
		if size > 4 {
			size = 4
		}
	}

	return &Pool{
		logger: logger,
		size:   size,
		// Unbuffered: a submitted job is always in a worker's hands,
		// never stranded in a queue across shutdown.
		jobs: make(chan func()),
	}
}

// Start launches the worker goroutines. Calling Start on a running
// pool is a no-op.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})

	p.logger.Info("hash pool starting", "workers", p.size)

	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case job := <-p.jobs:
					job()
				case <-p.stopCh:
					return
				}
			}
		}()
	}
}

// Stop waits for in-flight jobs to finish and releases the workers.
// Jobs submitted after Stop fail with ErrStopped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("hash pool stopped")
}

// Do runs fn on a pool worker and waits for it to finish. The context
// is honored only while waiting for a free worker: cancellation before
// dispatch returns ctx.Err(), but a job that has started is allowed to
// complete and Do returns normally.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrStopped
	}
	stopCh := p.stopCh
	p.mu.Unlock()

	done := make(chan struct{})
	job := func() {
		defer close(done)
		fn()
	}

	select {
	case p.jobs <- job:
	case <-stopCh:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-done
	return nil
}
