// Package worker runs tasks on a fixed set of goroutines fed by a bounded
// queue.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"seo-ai/pkg/logger"
)

var (
	ErrPoolStopped = errors.New("worker pool is stopped")
	ErrQueueFull   = errors.New("task queue is full")
)

// Task is a unit of work. A zero Timeout uses the pool default.
type Task struct {
	ID      string
	Fn      func(ctx context.Context) error
	Timeout time.Duration
}

// Result reports how one task ended.
type Result struct {
	TaskID   string
	Error    error
	Duration time.Duration
}

// Config sizes the pool.
type Config struct {
	Workers         int
	QueueSize       int
	TaskTimeout     time.Duration
	ShutdownTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Workers:         4,
		QueueSize:       100,
		TaskTimeout:     45 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Pool runs tasks on a fixed set of workers.
type Pool struct {
	config  Config
	tasks   chan Task
	results chan Result
	metrics *metrics
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	log     *logger.Logger

	mu      sync.RWMutex
	stopped bool
}

// NewPool starts config.Workers workers. Callers must drain Results or size
// the queue so that results never back up.
func NewPool(config Config) *Pool {
	def := DefaultConfig()
	if config.Workers <= 0 {
		config.Workers = def.Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = def.QueueSize
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = def.TaskTimeout
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = def.ShutdownTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		config:  config,
		tasks:   make(chan Task, config.QueueSize),
		results: make(chan Result, config.QueueSize),
		metrics: newMetrics(),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.GetLogger().WithField("component", "worker_pool"),
	}

	for i := 0; i < config.Workers; i++ {
		w := newWorker(i, p)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run()
		}()
	}
	p.log.WithField("workers", config.Workers).Debug("Worker pool started")
	return p
}

// Submit queues a task without blocking.
func (p *Pool) Submit(task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}
	if task.Timeout <= 0 {
		task.Timeout = p.config.TaskTimeout
	}

	select {
	case p.tasks <- task:
		p.metrics.submitted.Add(1)
		return nil
	default:
		p.metrics.rejected.Add(1)
		return ErrQueueFull
	}
}

// Results delivers one Result per executed task. It is closed by Stop.
func (p *Pool) Results() <-chan Result {
	return p.results
}

func (p *Pool) Stats() Stats {
	return p.metrics.snapshot()
}

// Stop lets queued tasks finish, waiting up to ShutdownTimeout before
// cancelling the ones still running.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.tasks)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.config.ShutdownTimeout):
		p.log.Warn("Worker pool shutdown timeout exceeded, cancelling tasks")
		p.cancel()
		<-done
	}
	p.cancel()
	close(p.results)

	stats := p.Stats()
	p.log.WithFields(map[string]interface{}{
		"completed": stats.Completed,
		"failed":    stats.Failed,
		"rejected":  stats.Rejected,
	}).Debug("Worker pool stopped")
}
