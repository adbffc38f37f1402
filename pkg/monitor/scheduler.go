package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"seo-ai/pkg/logger"
)

// Scheduler triggers RunOnce on a fixed interval. A cycle that is still
// running when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	monitor  *Monitor
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewScheduler(m *Monitor, interval time.Duration) *Scheduler {
	return &Scheduler{
		monitor:  m,
		interval: interval,
		log:      logger.GetLogger().WithField("component", "monitor_scheduler"),
	}
}

// Start schedules a cycle every interval. It fails if already started.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cl := cronLogger{log: s.log}
	c := cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)))

	_, err := c.AddJob("@every "+s.interval.String(), cron.FuncJob(func() {
		start := time.Now()
		s.log.Debug("Scheduled monitoring cycle starting")
		run := s.monitor.RunOnce(ctx)
		s.log.WithFields(map[string]interface{}{
			"urls":        len(run.Results),
			"duration_ms": time.Since(start).Milliseconds(),
		}).Debug("Scheduled monitoring cycle finished")
	}))
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule monitor: %w", err)
	}

	c.Start()
	s.cron = c
	s.cancel = cancel
	s.log.WithField("interval", s.interval.String()).Info("Monitor scheduler started")
	return nil
}

// Stop halts the schedule and cancels a running cycle without waiting for it.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return
	}
	s.cron.Stop()
	s.cancel()
	s.cron = nil
	s.log.Info("Monitor scheduler stopped")
}

type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(pairs(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithFields(pairs(keysAndValues)).WithError(err).Error(msg)
}

func pairs(kv []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return fields
}
