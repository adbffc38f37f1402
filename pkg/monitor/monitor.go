// Package monitor periodically analyzes and scores a list of watched URLs.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/logger"
	"seo-ai/pkg/scorer"
	"seo-ai/pkg/worker"
)

// Analyzer extracts page features.
type Analyzer interface {
	Analyze(ctx context.Context, in analyzer.Input) (*analyzer.Features, error)
}

// Predictor scores a page with the trained model.
type Predictor interface {
	PredictPage(signals scorer.PageSignals, page scorer.PageContent) (*scorer.Prediction, error)
}

// URLResult holds either the analysis and predicted score or an error.
type URLResult struct {
	Analyze *analyzer.Features `json:"analyze,omitempty"`
	Score   *float64           `json:"score,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// Run is the outcome of one monitoring cycle.
type Run struct {
	RanAt   time.Time            `json:"ran_at"`
	Results map[string]URLResult `json:"results"`
}

// Options bound the work of a cycle.
type Options struct {
	Workers     int
	TaskTimeout time.Duration
}

// Monitor analyzes and scores the watched URLs and keeps the last run.
type Monitor struct {
	watch     *WatchList
	analyzer  Analyzer
	predictor Predictor
	opts      Options
	now       func() time.Time
	log       *logger.Logger

	mu   sync.RWMutex
	last *Run
}

func New(watch *WatchList, a Analyzer, p Predictor, opts Options) *Monitor {
	return &Monitor{
		watch:     watch,
		analyzer:  a,
		predictor: p,
		opts:      opts,
		now:       time.Now,
		log:       logger.GetLogger().WithField("component", "monitor"),
	}
}

func (m *Monitor) WatchURLs() []string {
	return m.watch.Get()
}

func (m *Monitor) SetWatchURLs(urls []string) ([]string, error) {
	return m.watch.Set(urls)
}

// RunOnce analyzes and scores every watched URL.
func (m *Monitor) RunOnce(ctx context.Context) *Run {
	return m.RunURLs(ctx, m.watch.Get())
}

// RunURLs runs one cycle over urls on a worker pool and records it as the
// last run.
func (m *Monitor) RunURLs(ctx context.Context, urls []string) *Run {
	start := m.now()

	var mu sync.Mutex
	results := make(map[string]URLResult, len(urls))
	record := func(url string, r URLResult) {
		mu.Lock()
		results[url] = r
		mu.Unlock()
	}

	pool := worker.NewPool(worker.Config{
		Workers:     m.opts.Workers,
		QueueSize:   len(urls) + 1,
		TaskTimeout: m.opts.TaskTimeout,
	})

	submitted := 0
	for _, u := range urls {
		u := u
		err := pool.Submit(worker.Task{ID: u, Fn: func(taskCtx context.Context) error {
			taskCtx, cancel := context.WithCancel(taskCtx)
			defer cancel()
			stop := context.AfterFunc(ctx, cancel)
			defer stop()

			r, err := m.check(taskCtx, u)
			if err != nil {
				record(u, URLResult{Error: err.Error()})
				return err
			}
			record(u, r)
			return nil
		}})
		if err != nil {
			record(u, URLResult{Error: err.Error()})
			continue
		}
		submitted++
	}

	for i := 0; i < submitted; i++ {
		res := <-pool.Results()
		var pe *worker.PanicError
		if errors.As(res.Error, &pe) {
			record(res.TaskID, URLResult{Error: pe.Error()})
		}
	}
	pool.Stop()

	run := &Run{RanAt: start.UTC(), Results: results}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	m.log.WithFields(map[string]interface{}{
		"urls":        len(urls),
		"failed":      failed,
		"duration_ms": m.now().Sub(start).Milliseconds(),
	}).Info("Monitoring cycle finished")

	m.mu.Lock()
	m.last = run
	m.mu.Unlock()
	return run
}

// Last returns the most recent run, if any.
func (m *Monitor) Last() (*Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last, m.last != nil
}

func (m *Monitor) check(ctx context.Context, url string) (URLResult, error) {
	features, err := m.analyzer.Analyze(ctx, analyzer.Input{URL: url})
	if err != nil {
		return URLResult{}, err
	}

	page := scorer.PageContent{
		Title:        features.Title,
		Article:      features.Title + " " + features.MetaDescription,
		Meta:         features.MetaDescription,
		Keywords:     features.TopKeywords,
		HeadingCount: 1,
		Canonical:    true,
	}
	pred, err := m.predictor.PredictPage(scorer.PageSignals{Domain: "monitor.local"}, page)
	if err != nil {
		return URLResult{}, err
	}

	score := pred.Score
	return URLResult{Analyze: features, Score: &score}, nil
}
