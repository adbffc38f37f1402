package service

import (
	"context"
	"errors"
	"testing"

	"seo-ai/pkg/analyzer"
	"seo-ai/pkg/fetcher"
)

type nopFetcher struct{}

func (nopFetcher) Fetch(ctx context.Context, url string) (*fetcher.Page, error) {
	return nil, errors.New("offline")
}

func TestSEOService_AnalyzeAndScore(t *testing.T) {
	svc := NewSEOService(analyzer.NewService(nopFetcher{}))

	page, err := svc.AnalyzeAndScore(context.Background(), analyzer.Input{
		HTML: `<html><head><title>Best Pancake Recipes</title></head><body><h1>Pancakes</h1><p>Mix flour and milk.</p></body></html>`,
	})
	if err != nil {
		t.Fatalf("AnalyzeAndScore failed: %v", err)
	}
	if page.Features.Title != "Best Pancake Recipes" {
		t.Errorf("Unexpected title: %q", page.Features.Title)
	}
	if page.Score.OverallScore <= 0 || page.Score.OverallScore > 100 {
		t.Errorf("Score out of range: %v", page.Score.OverallScore)
	}
	if page.Score.Weights.Content != 0.5 {
		t.Errorf("Expected weights in the score, got: %+v", page.Score.Weights)
	}
}

func TestSEOService_PropagatesErrors(t *testing.T) {
	svc := NewSEOService(analyzer.NewService(nopFetcher{}))

	if _, err := svc.AnalyzeAndScore(context.Background(), analyzer.Input{}); !errors.Is(err, analyzer.ErrNoInput) {
		t.Errorf("Expected ErrNoInput, got: %v", err)
	}

	_, err := svc.AnalyzeAndScore(context.Background(), analyzer.Input{URL: "https://example.com"})
	var fe *analyzer.FetchError
	if !errors.As(err, &fe) {
		t.Errorf("Expected a FetchError, got: %v", err)
	}
}
