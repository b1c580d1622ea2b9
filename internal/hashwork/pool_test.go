package hashwork

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestPool(size int) *Pool {
	p := New(Config{Size: size})
	p.Start()
	return p
}

func TestPool_Do(t *testing.T) {
	p := newTestPool(2)
	defer p.Stop()

	var ran atomic.Bool
	err := p.Do(context.Background(), func() {
		ran.Store(true)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran.Load() {
		t.Error("expected job to have run")
	}
}

func TestPool_Do_Concurrent(t *testing.T) {
	p := newTestPool(4)
	defer p.Stop()

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := p.Do(context.Background(), func() {
				count.Add(1)
			}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if count.Load() != 32 {
		t.Errorf("expected 32 jobs to run, got %d", count.Load())
	}
}

func TestPool_Do_CancelledBeforeDispatch(t *testing.T) {
	// A single worker occupied by a slow job forces the second submit
	// to wait for dispatch, where cancellation must be honored.
	p := newTestPool(1)
	defer p.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = p.Do(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Do(ctx, func() {
		t.Error("job should not have run")
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	close(release)
}

func TestPool_Do_StartedJobCompletesAfterCancel(t *testing.T) {
	p := newTestPool(1)
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())

	var finished atomic.Bool
	err := p.Do(ctx, func() {
		cancel() // caller abandons mid-job
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !finished.Load() {
		t.Error("expected in-flight job to run to completion")
	}
}

func TestPool_Do_AfterStop(t *testing.T) {
	p := newTestPool(1)
	p.Stop()

	err := p.Do(context.Background(), func() {
		t.Error("job should not have run")
	})
	if err != ErrStopped {
		t.Errorf("expected ErrStopped, got %v", err)
	}
}

func TestPool_StartStopIdempotent(t *testing.T) {
	p := New(Config{Size: 1})
	p.Start()
	p.Start()
	p.Stop()
	p.Stop()
}
