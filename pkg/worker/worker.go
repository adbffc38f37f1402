package worker

import (
	"context"
	"fmt"
	"time"

	"seo-ai/pkg/logger"
)

type worker struct {
	id   int
	pool *Pool
	log  *logger.Logger
}

func newWorker(id int, pool *Pool) *worker {
	return &worker{
		id:   id,
		pool: pool,
		log:  pool.log.WithField("worker_id", id),
	}
}

func (w *worker) run() {
	for task := range w.pool.tasks {
		result := w.process(task)
		select {
		case w.pool.results <- result:
		case <-w.pool.ctx.Done():
			return
		}
	}
}

func (w *worker) process(task Task) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(w.pool.ctx, task.Timeout)
	defer cancel()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				w.log.WithFields(map[string]interface{}{
					"task_id": task.ID,
					"panic":   r,
				}).Error("Task panicked")
				err = &PanicError{Value: r}
			}
		}()
		err = task.Fn(ctx)
	}()

	duration := time.Since(start)
	w.pool.metrics.record(duration, err)

	fields := map[string]interface{}{
		"task_id":     task.ID,
		"duration_ms": duration.Milliseconds(),
	}
	if err != nil {
		w.log.WithFields(fields).WithError(err).Warn("Task completed with error")
	} else {
		w.log.WithFields(fields).Debug("Task completed")
	}

	return Result{TaskID: task.ID, Error: err, Duration: duration}
}

// PanicError wraps a value recovered from a panicking task.
type PanicError struct {
	Value interface{}
}

func (pe *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", pe.Value)
}
