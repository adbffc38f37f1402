package scorer

import (
	"math"
	"regexp"
	"strings"

	"seo-ai/pkg/textstat"
)

var (
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceBreaker = regexp.MustCompile(`[.!?]+`)
)

// FeatureNames lists the model inputs in the column order used for training.
var FeatureNames = []string{
	"article_words",
	"avg_sentence_len",
	"external_links",
	"h1_present",
	"h_count",
	"has_canonical",
	"images",
	"images_per_100_words",
	"internal_links",
	"keyword_density_article",
	"keyword_density_title",
	"links_per_100_words",
	"meta_len",
	"meta_words",
	"readability",
	"title_len",
	"title_words",
}

// FeatureVector maps feature names to values.
type FeatureVector map[string]float64

// Row orders the vector by keys. Missing features read as 0.
func (v FeatureVector) Row(keys []string) []float64 {
	row := make([]float64, len(keys))
	for i, k := range keys {
		row[i] = v[k]
	}
	return row
}

// PageSignals are structural facts about a page as seen by the analyzer.
type PageSignals struct {
	Domain        string `json:"domain,omitempty"`
	Title         string `json:"title,omitempty"`
	Meta          string `json:"meta,omitempty"`
	H1            string `json:"h1,omitempty"`
	HeadingCount  int    `json:"heading_count,omitempty"`
	ImagesCount   int    `json:"images_count,omitempty"`
	InternalLinks int    `json:"internal_links,omitempty"`
	ExternalLinks int    `json:"external_links,omitempty"`
	Canonical     bool   `json:"canonical,omitempty"`
}

// PageContent is the copy being evaluated, optionally with its own structure.
type PageContent struct {
	Title         string   `json:"title"`
	Article       string   `json:"article"`
	Meta          string   `json:"meta"`
	Keywords      []string `json:"keywords,omitempty"`
	HeadingCount  int      `json:"heading_count,omitempty"`
	ImagesCount   int      `json:"images_count,omitempty"`
	InternalLinks int      `json:"internal_links,omitempty"`
	ExternalLinks int      `json:"external_links,omitempty"`
	Canonical     bool     `json:"canonical,omitempty"`
}

// MergeSignals fills structural signals that are unset in s from the page.
func MergeSignals(s PageSignals, page PageContent) PageSignals {
	if s.HeadingCount == 0 {
		s.HeadingCount = page.HeadingCount
	}
	if s.ImagesCount == 0 {
		s.ImagesCount = page.ImagesCount
	}
	if s.InternalLinks == 0 {
		s.InternalLinks = page.InternalLinks
	}
	if s.ExternalLinks == 0 {
		s.ExternalLinks = page.ExternalLinks
	}
	if !s.Canonical {
		s.Canonical = page.Canonical
	}
	return s
}

// ExtractFeatures builds the model input for a page.
func ExtractFeatures(s PageSignals, c PageContent, keywords []string) FeatureVector {
	v := FeatureVector{}

	title := s.Title
	if title == "" {
		title = c.Title
	}
	v["title_len"] = float64(len([]rune(title)))
	v["meta_len"] = float64(len([]rune(s.Meta)))
	v["h1_present"] = boolFloat(s.H1 != "" || s.HeadingCount > 0)
	v["h_count"] = float64(s.HeadingCount)
	v["images"] = float64(s.ImagesCount)
	v["internal_links"] = float64(s.InternalLinks)
	v["external_links"] = float64(s.ExternalLinks)
	v["has_canonical"] = boolFloat(s.Canonical)

	words := countWords(c.Article)
	v["article_words"] = float64(words)
	v["title_words"] = float64(countWords(c.Title))
	v["meta_words"] = float64(countWords(c.Meta))
	v["avg_sentence_len"] = avgSentenceLength(c.Article)
	if c.Article != "" {
		v["readability"] = textstat.FleschReadingEase(c.Article)
	} else {
		v["readability"] = 0
	}

	v["keyword_density_title"] = keywordDensity(c.Title, keywords)
	v["keyword_density_article"] = keywordDensity(c.Article, keywords)

	denom := float64(words)
	if denom == 0 {
		denom = 1
	}
	v["images_per_100_words"] = v["images"] / denom * 100
	v["links_per_100_words"] = (v["internal_links"] + v["external_links"]) / denom * 100

	for k, val := range v {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			v[k] = 0
		}
	}
	return v
}

// Label is the heuristic training target for a feature vector.
func Label(v FeatureVector) float64 {
	score := 0.0
	score += math.Min(20, v["article_words"]*0.05)
	if v["h1_present"] != 0 {
		score += 10
	}
	score += math.Min(30, v["readability"]*0.2)
	score += math.Min(20, v["title_len"]*0.2)
	score += math.Min(20, v["keyword_density_article"]*100)
	return clamp(score)
}

func countWords(text string) int {
	return len(wordPattern.FindAllString(text, -1))
}

func keywordDensity(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0
	}
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	total := len(words)
	if total == 0 {
		total = 1
	}
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	hits := 0
	for _, k := range keywords {
		hits += counts[strings.ToLower(k)]
	}
	return float64(hits) / float64(total)
}

func avgSentenceLength(text string) float64 {
	if text == "" {
		return 0
	}
	var n, words int
	for _, s := range sentenceBreaker.Split(text, -1) {
		if strings.TrimSpace(s) == "" {
			continue
		}
		n++
		words += countWords(s)
	}
	if n == 0 {
		return 0
	}
	return float64(words) / float64(n)
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
