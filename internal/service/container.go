package service

import (
	"errors"
	"fmt"
	"os"
	"time"

	"seo-ai/internal/config"
	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/competitor"
	"seo-ai/pkg/fetcher"
	"seo-ai/pkg/generator"
	"seo-ai/pkg/llm"
	"seo-ai/pkg/logger"
	"seo-ai/pkg/monitor"
	"seo-ai/pkg/schedule"
	"seo-ai/pkg/scorer"
)

// Container holds every service built from one configuration.
type Container struct {
	SEO        *SEOService
	Generator  *generator.Service
	Competitor *competitor.Service
	Models     *scorer.ModelStore
	Planner    *schedule.Planner
	Monitor    *monitor.Monitor
	LLM        *llm.FallbackClient
}

// NewContainer builds the fetchers, the LLM client and every service, and
// loads or trains the model.
func NewContainer(cfg *config.Config) (*Container, error) {
	pageFetcher := fetcher.New(fetcher.Options{
		UserAgent:    cfg.Fetcher.UserAgent,
		Timeout:      cfg.Fetcher.Timeout,
		MaxBodyBytes: cfg.Fetcher.MaxBodyBytes,
		MaxRetries:   cfg.Fetcher.MaxRetries,
		RetryDelay:   cfg.Fetcher.RetryDelay,
		CacheSize:    cfg.Fetcher.CacheSize,
		CacheTTL:     cfg.Fetcher.CacheTTL,
	})
	competitorFetcher := fetcher.New(fetcher.Options{
		UserAgent:    cfg.Competitor.UserAgent,
		Timeout:      cfg.Competitor.Timeout,
		MaxBodyBytes: cfg.Fetcher.MaxBodyBytes,
		MaxRetries:   cfg.Fetcher.MaxRetries,
		RetryDelay:   cfg.Fetcher.RetryDelay,
		RequireOK:    true,
	})

	client, err := llm.New(llm.Options{
		Provider:        cfg.LLM.Provider,
		OpenAIKey:       cfg.LLM.OpenAI.APIKey,
		OpenAIModel:     cfg.LLM.OpenAI.Model,
		OpenAIBaseURL:   cfg.LLM.OpenAI.BaseURL,
		ZhipuKey:        cfg.LLM.Zhipu.APIKey,
		ZhipuModel:      cfg.LLM.Zhipu.Model,
		MockLatency:     cfg.LLM.MockLatency,
		Timeout:         cfg.LLM.Timeout,
		BreakerFailures: cfg.LLM.BreakerFailures,
		BreakerReset:    cfg.LLM.BreakerReset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	predictor, err := LoadModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	seo := NewSEOService(analyzer.NewService(pageFetcher))
	models := scorer.NewModelStore(predictor)
	watch := monitor.NewWatchList(cfg.Monitor.DataDir, cfg.Monitor.DefaultURLs)

	return &Container{
		SEO:        seo,
		Generator:  generator.NewService(client),
		Competitor: competitor.NewService(competitorFetcher, client, cfg.Competitor.MaxConcurrency),
		Models:     models,
		Planner:    schedule.NewPlanner(time.Now),
		Monitor: monitor.New(watch, seo, models, monitor.Options{
			Workers:     cfg.Monitor.Workers,
			TaskTimeout: cfg.Monitor.TaskTimeout,
		}),
		LLM: client,
	}, nil
}

// Reload re-reads the configuration behind mgr, applies its log level and
// swaps in the model found at the configured path. Other settings take effect
// on restart. The current model is kept when none can be loaded.
func (c *Container) Reload(mgr config.Manager) error {
	if err := mgr.Reload(); err != nil {
		return err
	}
	cfg := mgr.GetConfig()
	logger.SetLogger(logger.New(cfg.Logger))

	p, err := LoadModel(cfg.Model)
	if err != nil {
		return err
	}
	if p != nil {
		c.Models.Set(p)
	}
	return nil
}

// LoadModel reads the saved predictor. A missing file is trained and saved
// when TrainIfMissing is set, otherwise the service runs without a model and
// prediction requests are rejected.
func LoadModel(cfg config.ModelConfig) (*scorer.Predictor, error) {
	log := logger.GetLogger().WithField("component", "model")

	p, err := scorer.LoadPredictor(cfg.Path)
	if err == nil {
		log.WithFields(map[string]interface{}{
			"path": cfg.Path,
			"mae":  p.Metrics.MAE,
			"r2":   p.Metrics.R2,
		}).Info("Loaded prediction model")
		return p, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.Path, err)
	}
	if !cfg.TrainIfMissing {
		log.WithField("path", cfg.Path).Warn("Model file not found, prediction disabled")
		return nil, nil
	}

	log.WithField("samples", cfg.Samples).Info("Model file not found, training on synthetic data")
	p, err = scorer.Train(scorer.TrainOptions{Samples: cfg.Samples, Trees: cfg.Trees, Seed: cfg.Seed})
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}
	if err := p.Save(cfg.Path); err != nil {
		log.WithError(err).Warn("Failed to save trained model")
	}
	log.WithFields(map[string]interface{}{
		"mae": p.Metrics.MAE,
		"r2":  p.Metrics.R2,
	}).Info("Trained prediction model")
	return p, nil
}
