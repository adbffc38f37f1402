// Package competitor benchmarks a page against competitor pages.
package competitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"seo-ai/pkg/fetcher"
	"seo-ai/pkg/llm"
	"seo-ai/pkg/logger"
)

// ErrMissingData is returned when a comparison lacks one of its sides.
var ErrMissingData = errors.New("missing comparison data")

const insightMaxTokens = 350

// Fetcher downloads competitor pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Result is the per-URL outcome of Analyze.
type Result struct {
	OK       bool          `json:"ok,omitempty"`
	Features *PageFeatures `json:"features,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// Differences are target minus competitor for each count.
type Differences struct {
	WordCount      int `json:"word_count"`
	Images         int `json:"images"`
	InternalLinks  int `json:"internal_links"`
	ExternalLinks  int `json:"external_links"`
	KeywordOverlap int `json:"keyword_overlap"`
}

// Report compares the target with one competitor.
type Report struct {
	Competitor  string      `json:"competitor"`
	Differences Differences `json:"differences"`
}

// Summary is the headline of a Comparison.
type Summary struct {
	TargetWordCount    int     `json:"target_word_count"`
	CompetitorAvgWords float64 `json:"competitor_avg_words"`
	Recommendation     string  `json:"recommendation"`
}

// Comparison is the output of Compare.
type Comparison struct {
	Summary  Summary  `json:"summary"`
	Detailed []Report `json:"detailed"`
}

// Service fetches competitor pages and asks the LLM for insights.
type Service struct {
	fetcher     Fetcher
	llm         llm.Client
	concurrency int
	log         *logger.Logger
}

// NewService builds the service. The fetcher should reject non-200 pages.
func NewService(f Fetcher, client llm.Client, concurrency int) *Service {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Service{
		fetcher:     f,
		llm:         client,
		concurrency: concurrency,
		log:         logger.GetLogger().WithField("component", "competitor"),
	}
}

// Analyze fetches every URL and extracts its features. Failures are reported
// per URL and never abort the batch.
func (s *Service) Analyze(ctx context.Context, urls []string, fetchText bool) map[string]Result {
	var mu sync.Mutex
	results := make(map[string]Result, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, u := range urls {
		u := u
		g.Go(func() error {
			res := s.analyzeOne(gctx, u, fetchText)
			mu.Lock()
			results[u] = res
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.log.WithFields(map[string]interface{}{
		"urls":       len(urls),
		"fetch_text": fetchText,
	}).Info("Competitor analysis finished")
	return results
}

func (s *Service) analyzeOne(ctx context.Context, pageURL string, fetchText bool) (res Result) {
	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return Result{Error: err.Error()}
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: fmt.Sprintf("extract_failed: %v", r)}
		}
	}()

	features, err := ExtractFeatures(page.Body, pageURL)
	if err != nil {
		return Result{Error: "extract_failed: " + err.Error()}
	}
	if fetchText {
		features.MainContent = MainContent(page.Body, pageURL)
	} else {
		features.TextExcerpt = ""
	}
	return Result{OK: true, Features: features}
}

// Compare reports how target differs from each competitor.
func Compare(target *PageFeatures, competitors []PageFeatures) (*Comparison, error) {
	if target.empty() || len(competitors) == 0 {
		return nil, ErrMissingData
	}

	targetKeywords := make(map[string]struct{}, len(target.TopKeywords))
	for _, k := range target.TopKeywords {
		targetKeywords[k] = struct{}{}
	}

	report := make([]Report, 0, len(competitors))
	total := 0
	for _, c := range competitors {
		title := c.Title
		if title == "" {
			title = "Competitor"
		}

		seen := map[string]struct{}{}
		for _, k := range c.TopKeywords {
			if _, ok := targetKeywords[k]; ok {
				seen[k] = struct{}{}
			}
		}

		report = append(report, Report{
			Competitor: title,
			Differences: Differences{
				WordCount:      target.WordCount - c.WordCount,
				Images:         target.Images - c.Images,
				InternalLinks:  target.InternalLinks - c.InternalLinks,
				ExternalLinks:  target.ExternalLinks - c.ExternalLinks,
				KeywordOverlap: len(seen),
			},
		})
		total += c.WordCount
	}

	avg := float64(total) / float64(len(competitors))
	recommendation := "Your content length is strong; focus on backlinks and meta tags"
	if float64(target.WordCount) < avg {
		recommendation = "Increase content length and keyword coverage"
	}

	return &Comparison{
		Summary: Summary{
			TargetWordCount:    target.WordCount,
			CompetitorAvgWords: math.RoundToEven(avg*100) / 100,
			Recommendation:     recommendation,
		},
		Detailed: report,
	}, nil
}

// Insights asks the LLM for a strategy write-up of a comparison.
func (s *Service) Insights(ctx context.Context, c *Comparison) (string, error) {
	if c == nil || (c.Summary == (Summary{}) && len(c.Detailed) == 0) {
		return "", ErrMissingData
	}

	resp, err := s.llm.Generate(ctx, llm.Request{
		Prompt:      InsightPrompt(c),
		Kind:        llm.KindInsight,
		MaxTokens:   insightMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("AI insight generation failed: %w", err)
	}
	return resp.Text, nil
}

// InsightPrompt embeds c as JSON in the strategist prompt.
func InsightPrompt(c *Comparison) string {
	summary, _ := json.Marshal(c.Summary)
	detailed, _ := json.Marshal(c.Detailed)
	return "You are an SEO strategist. Based on this competitor comparison data, " +
		"write a concise SEO insight report.\n\n" +
		fmt.Sprintf("Summary: %s\n\n", summary) +
		fmt.Sprintf("Details: %s\n\n", detailed) +
		"Explain:\n" +
		"- Overall SEO positioning vs competitors\n" +
		"- Strengths of the target site\n" +
		"- Weaknesses to improve\n" +
		"- 3 prioritized next-step actions for better ranking.\n" +
		"Keep the tone professional and under 250 words."
}
