package analyzer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seo-ai/pkg/fetcher"
)

type fakeFetcher struct {
	body string
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*fetcher.Page, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return &fetcher.Page{URL: url, StatusCode: 200, Body: f.body}, nil
}

func TestService_AnalyzePrefersURL(t *testing.T) {
	f := &fakeFetcher{body: samplePage}
	svc := NewService(f)

	features, err := svc.Analyze(context.Background(), Input{URL: "https://example.com", HTML: "<p>ignored</p>"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(f.urls) != 1 || f.urls[0] != "https://example.com" {
		t.Errorf("Expected a single fetch of the URL, got: %v", f.urls)
	}
	if features.Title != "Best Pancake Recipes" {
		t.Errorf("Unexpected title: %q", features.Title)
	}
	if !features.HasSchema {
		t.Error("Expected schema to be detected")
	}
}

func TestService_AnalyzeFetchFailure(t *testing.T) {
	svc := NewService(&fakeFetcher{err: errors.New("HTTP 500")})

	_, err := svc.Analyze(context.Background(), Input{URL: "https://example.com"})
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("Expected FetchError, got: %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("Expected underlying cause in message, got: %s", err.Error())
	}
}

func TestService_AnalyzeText(t *testing.T) {
	f := &fakeFetcher{}
	svc := NewService(f)

	features, err := svc.Analyze(context.Background(), Input{Text: "Short <b>text</b> about pancakes."})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(f.urls) != 0 {
		t.Errorf("Expected no fetch for text input, got: %v", f.urls)
	}
	if features.WordCount != 4 {
		t.Errorf("Expected 4 words, got: %d", features.WordCount)
	}

	want := []string{
		"Meta description is too short (recommended 50-160 chars)",
		"Title looks short (consider 50-70 chars with target keywords)",
		"Content is short — consider adding more helpful content (>300 words recommended)",
	}
	if len(features.Recommendations) != len(want) {
		t.Fatalf("Expected %d recommendations, got: %v", len(want), features.Recommendations)
	}
	for i := range want {
		if features.Recommendations[i] != want[i] {
			t.Errorf("Recommendation %d = %q, want %q", i, features.Recommendations[i], want[i])
		}
	}
}

func TestService_AnalyzeNoInput(t *testing.T) {
	_, err := NewService(&fakeFetcher{}).Analyze(context.Background(), Input{})
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("Expected ErrNoInput, got: %v", err)
	}
}

func TestRecommendations_MissingAlt(t *testing.T) {
	f := &Features{
		Title:            strings.Repeat("t", 40),
		MetaDescription:  strings.Repeat("m", 60),
		WordCount:        500,
		ImagesMissingAlt: 3,
	}
	recs := Recommendations(f)
	if len(recs) != 1 || recs[0] != "3 images missing alt text" {
		t.Errorf("Unexpected recommendations: %v", recs)
	}
}
