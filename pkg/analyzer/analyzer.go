package analyzer

import (
	"context"
	"errors"
	"fmt"
	"html"
	"unicode/utf8"

	"seo-ai/pkg/fetcher"
	"seo-ai/pkg/logger"
	"seo-ai/pkg/textstat"
)

const defaultMaxKeywords = 12

// ErrNoInput is returned when a request carries neither url, html nor text.
var ErrNoInput = errors.New("provide url or html or text")

// FetchError wraps a failure to download the page under analysis.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch URL: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Input selects the page to analyze. URL wins over HTML, HTML over Text.
type Input struct {
	URL  string `json:"url,omitempty"`
	HTML string `json:"html,omitempty"`
	Text string `json:"text,omitempty"`
}

// Readability holds the Flesch reading ease and Flesch-Kincaid grade.
type Readability struct {
	Flesch  float64 `json:"flesch"`
	FKGrade float64 `json:"fk_grade"`
}

// Features is the analyzer output. The scorer consumes the same shape.
type Features struct {
	Title            string      `json:"title"`
	MetaDescription  string      `json:"meta_description"`
	Headings         []Heading   `json:"headings"`
	ImagesTotal      int         `json:"images_total"`
	ImagesMissingAlt int         `json:"images_missing_alt"`
	LinksCount       int         `json:"links_count"`
	HasSchema        bool        `json:"has_schema"`
	WordCount        int         `json:"word_count"`
	SentenceCount    int         `json:"sentence_count"`
	Readability      Readability `json:"readability"`
	TopKeywords      []string    `json:"top_keywords"`
	Recommendations  []string    `json:"recommendations"`
}

// Fetcher downloads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Page, error)
}

// Service extracts SEO features from a URL, raw HTML or plain text.
type Service struct {
	fetcher     Fetcher
	maxKeywords int
	log         *logger.Logger
}

// NewService uses f for URL input.
func NewService(f Fetcher) *Service {
	return &Service{
		fetcher:     f,
		maxKeywords: defaultMaxKeywords,
		log:         logger.GetLogger().WithField("component", "analyzer"),
	}
}

// Analyze resolves the input to markup and extracts its SEO features.
func (s *Service) Analyze(ctx context.Context, in Input) (*Features, error) {
	var markup string
	switch {
	case in.URL != "":
		page, err := s.fetcher.Fetch(ctx, in.URL)
		if err != nil {
			return nil, &FetchError{URL: in.URL, Err: err}
		}
		markup = page.Body
	case in.HTML != "":
		markup = in.HTML
	case in.Text != "":
		markup = "<html><body><p>" + html.EscapeString(in.Text) + "</p></body></html>"
	default:
		return nil, ErrNoInput
	}

	features, err := s.FromHTML(markup)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"url":        logger.MaskURL(in.URL),
		"word_count": features.WordCount,
		"headings":   len(features.Headings),
	}).Debug("Analyzed page")
	return features, nil
}

// FromHTML extracts features from markup that is already in hand.
func (s *Service) FromHTML(markup string) (*Features, error) {
	doc, err := ParseHTML(markup)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	meta := ExtractMeta(doc)
	text := ExtractText(doc)
	scores := textstat.Compute(text)

	features := &Features{
		Title:            meta.Title,
		MetaDescription:  meta.MetaDescription,
		Headings:         meta.Headings,
		ImagesTotal:      meta.ImagesTotal,
		ImagesMissingAlt: meta.ImagesMissingAlt,
		LinksCount:       meta.LinksCount,
		HasSchema:        meta.HasSchema,
		WordCount:        scores.WordCount,
		SentenceCount:    scores.SentenceCount,
		Readability: Readability{
			Flesch:  scores.FleschReadingEase,
			FKGrade: scores.FleschKincaidGrade,
		},
		TopKeywords: TopKeywords(text, s.maxKeywords),
	}
	features.Recommendations = Recommendations(features)
	return features, nil
}

// Recommendations applies the quick on-page rules to analyzer output.
func Recommendations(f *Features) []string {
	recs := []string{}
	if utf8.RuneCountInString(f.MetaDescription) < 50 {
		recs = append(recs, "Meta description is too short (recommended 50-160 chars)")
	}
	if utf8.RuneCountInString(f.Title) < 30 {
		recs = append(recs, "Title looks short (consider 50-70 chars with target keywords)")
	}
	if f.WordCount < 200 {
		recs = append(recs, "Content is short — consider adding more helpful content (>300 words recommended)")
	}
	if f.ImagesMissingAlt > 0 {
		recs = append(recs, fmt.Sprintf("%d images missing alt text", f.ImagesMissingAlt))
	}
	return recs
}
