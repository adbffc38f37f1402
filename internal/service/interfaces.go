package service

import (
	"context"

	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/competitor"
	"seo-ai/pkg/generator"
	"seo-ai/pkg/monitor"
	"seo-ai/pkg/schedule"
	"seo-ai/pkg/scorer"
)

// AnalyzerService extracts features and scores them.
type AnalyzerService interface {
	Analyze(ctx context.Context, in analyzer.Input) (*analyzer.Features, error)
	AnalyzeAndScore(ctx context.Context, in analyzer.Input) (*ScoredPage, error)
}

type GeneratorService interface {
	Generate(ctx context.Context, req generator.Request) map[string]generator.Output
}

// CompetitorService fetches competitors and explains comparisons.
type CompetitorService interface {
	Analyze(ctx context.Context, urls []string, fetchText bool) map[string]competitor.Result
	Insights(ctx context.Context, c *competitor.Comparison) (string, error)
}

type PredictorService interface {
	PredictPage(signals scorer.PageSignals, page scorer.PageContent) (*scorer.Prediction, error)
}

type ScheduleService interface {
	Suggest(req schedule.Request) (*schedule.Suggestion, error)
}

// MonitorService runs monitoring cycles and manages the watch list.
type MonitorService interface {
	RunOnce(ctx context.Context) *monitor.Run
	Last() (*monitor.Run, bool)
	WatchURLs() []string
	SetWatchURLs(urls []string) ([]string, error)
}
