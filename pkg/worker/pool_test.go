package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := NewPool(Config{Workers: 3, QueueSize: 10})
	var ran atomic.Int32

	for i := 0; i < 10; i++ {
		if err := p.Submit(Task{ID: "t", Fn: func(ctx context.Context) error {
			ran.Add(1)
			return nil
		}}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	for i := 0; i < 10; i++ {
		r := <-p.Results()
		if r.Error != nil {
			t.Errorf("Unexpected task error: %v", r.Error)
		}
	}
	p.Stop()

	if ran.Load() != 10 {
		t.Errorf("Expected 10 tasks to run, got %d", ran.Load())
	}
	stats := p.Stats()
	if stats.Submitted != 10 || stats.Completed != 10 || stats.Failed != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestPool_RecoversPanics(t *testing.T) {
	p := NewPool(Config{Workers: 1, QueueSize: 2})
	defer p.Stop()

	_ = p.Submit(Task{ID: "boom", Fn: func(ctx context.Context) error { panic("kaboom") }})

	r := <-p.Results()
	var pe *PanicError
	if !errors.As(r.Error, &pe) || pe.Value != "kaboom" {
		t.Fatalf("Expected a PanicError, got: %v", r.Error)
	}
	if r.TaskID != "boom" {
		t.Errorf("Unexpected task id: %q", r.TaskID)
	}
}

func TestPool_TaskTimeout(t *testing.T) {
	p := NewPool(Config{Workers: 1, QueueSize: 1})
	defer p.Stop()

	_ = p.Submit(Task{ID: "slow", Timeout: 20 * time.Millisecond, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}})

	r := <-p.Results()
	if !errors.Is(r.Error, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got: %v", r.Error)
	}
	if p.Stats().Failed != 1 {
		t.Errorf("Expected one failed task, got: %+v", p.Stats())
	}
}

func TestPool_RejectsWhenFullOrStopped(t *testing.T) {
	p := NewPool(Config{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	block := func(ctx context.Context) error { <-release; return nil }

	_ = p.Submit(Task{ID: "running", Fn: block})
	// Wait for the worker to pick up the first task so the queue is empty.
	deadline := time.Now().Add(time.Second)
	for len(p.tasks) > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	_ = p.Submit(Task{ID: "queued", Fn: block})

	if err := p.Submit(Task{ID: "overflow", Fn: block}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("Expected ErrQueueFull, got: %v", err)
	}
	if p.Stats().Rejected != 1 {
		t.Errorf("Expected one rejection, got: %+v", p.Stats())
	}

	close(release)
	<-p.Results()
	<-p.Results()
	p.Stop()

	if err := p.Submit(Task{ID: "late", Fn: block}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("Expected ErrPoolStopped, got: %v", err)
	}
	p.Stop()
}
