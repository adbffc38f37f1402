// Package generator drafts titles, meta descriptions and articles through
// an LLM client.
package generator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"seo-ai/pkg/llm"
	"seo-ai/pkg/logger"
)

// DefaultKinds is used when a request names no kinds.
var DefaultKinds = []string{"title", "meta", "article"}

const (
	DefaultMaxTokens   = 400
	DefaultTemperature = 0.7

	maxConcurrentKinds = 4
)

// Request selects what to generate. Temperature is a pointer so an explicit
// zero is kept.
type Request struct {
	Text        string          `json:"text"`
	Kinds       []string        `json:"kinds"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature *float64        `json:"temperature"`
	Features    *PromptFeatures `json:"features,omitempty"`
}

// Output is the result for one kind. Error is set instead of Output when
// generation failed.
type Output struct {
	Prompt   string `json:"prompt,omitempty"`
	Output   string `json:"output,omitempty"`
	Provider string `json:"provider,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Service fans generation requests out to an llm.Client.
type Service struct {
	client llm.Client
	log    *logger.Logger
}

// NewService builds a Service on client.
func NewService(client llm.Client) *Service {
	return &Service{
		client: client,
		log:    logger.GetLogger().WithField("component", "generator"),
	}
}

// Generate produces one output per requested kind. Kinds run concurrently,
// at most maxConcurrentKinds at a time.
func (s *Service) Generate(ctx context.Context, req Request) map[string]Output {
	kinds := req.Kinds
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := DefaultTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	features := pseudoFeatures(req.Text)
	if req.Features != nil {
		features = *req.Features
		if features.Text == "" {
			features.Text = req.Text
		}
	}

	var mu sync.Mutex
	results := make(map[string]Output, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentKinds)
	for _, kind := range kinds {
		kind := kind
		g.Go(func() error {
			prompt := BuildPrompt(features, kind)
			resp, err := s.client.Generate(gctx, llm.Request{
				Prompt:      prompt,
				Kind:        kind,
				MaxTokens:   maxTokens,
				Temperature: temperature,
			})

			out := Output{Prompt: prompt, Output: resp.Text, Provider: resp.Provider}
			if err != nil {
				s.log.WithField("kind", kind).WithError(err).Warn("Generation failed")
				out = Output{Error: err.Error()}
			}

			mu.Lock()
			results[kind] = out
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// pseudoFeatures stands in for analyzer output when only raw text is given.
func pseudoFeatures(text string) PromptFeatures {
	return PromptFeatures{
		Text:        text,
		TopKeywords: []string{"SEO", "content", "marketing", "rank"},
		Domain:      "example.com",
		WordCount:   800,
	}
}
