// Package scorer turns analyzer output into heuristic SEO scores and hosts
// the learned score predictor.
package scorer

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"seo-ai/pkg/analyzer"
)

// Weights used to blend the three subscores into the overall score.
type Weights struct {
	Content   float64 `json:"content"`
	Technical float64 `json:"technical"`
	Onpage    float64 `json:"onpage"`
}

// DefaultWeights favour content over technical and on-page quality.
var DefaultWeights = Weights{Content: 0.5, Technical: 0.25, Onpage: 0.25}

// Breakdown holds the three subscores, each on a 0-100 scale.
type Breakdown struct {
	Content   float64 `json:"content"`
	Technical float64 `json:"technical"`
	Onpage    float64 `json:"onpage"`
}

// Result is the heuristic score of one page.
type Result struct {
	OverallScore float64   `json:"overall_score"`
	Breakdown    Breakdown `json:"breakdown"`
	Weights      Weights   `json:"weights"`
	Notes        []string  `json:"notes"`
}

// ComputeSubscores scores content, technical and on-page quality on a 0-100
// scale and collects a note for every rule that fired.
func ComputeSubscores(f *analyzer.Features) (content, technical, onpage float64, notes []string) {
	notes = []string{}

	var wc float64
	switch {
	case f.WordCount >= 1200:
		wc = 100
	case f.WordCount >= 700:
		wc = 85
	case f.WordCount >= 300:
		wc = 65
	case f.WordCount >= 150:
		wc = 40
	default:
		wc = 10
		notes = append(notes, "Very short content — consider adding more helpful content (>300 words).")
	}

	var read float64
	switch flesch := f.Readability.Flesch; {
	case flesch >= 60:
		read = 100
	case flesch >= 40:
		read = 70
	default:
		read = 40
		notes = append(notes, "Low readability score — consider simplifying sentences and paragraphs.")
	}

	h1 := 0
	for _, h := range f.Headings {
		if strings.EqualFold(h.Tag, "h1") {
			h1++
		}
	}
	h := 100.0
	if h1 == 0 {
		h = 40
		notes = append(notes, "Missing H1 heading — add a clear H1 with primary keyword.")
	}

	content = wc*0.5 + read*0.3 + h*0.2

	schema := 60.0
	if f.HasSchema {
		schema = 100
	}
	img := 100.0
	if f.ImagesMissingAlt > 0 {
		img = math.Max(20, 100-float64(f.ImagesMissingAlt)*10)
	}
	link := 20.0
	if f.LinksCount >= 3 {
		link = 100
	} else if f.LinksCount >= 1 {
		link = 50
	}

	if !f.HasSchema {
		notes = append(notes, "No structured data (JSON-LD) detected — adding Schema can help rich results.")
	}
	if f.ImagesMissingAlt > 0 {
		notes = append(notes, fmt.Sprintf("%d images missing alt text — add alt attributes to images.", f.ImagesMissingAlt))
	}

	technical = schema*0.35 + img*0.35 + link*0.30

	var title float64
	switch n := utf8.RuneCountInString(strings.TrimSpace(f.Title)); {
	case n >= 40 && n <= 70:
		title = 100
	case n > 70:
		title = 60
		notes = append(notes, "Title is long — consider shortening to 50-70 characters.")
	case n >= 20:
		title = 70
	default:
		title = 30
		notes = append(notes, "Title is short or missing — include target keywords in the title (50-70 chars).")
	}

	var meta float64
	switch n := utf8.RuneCountInString(strings.TrimSpace(f.MetaDescription)); {
	case n >= 50 && n <= 160:
		meta = 100
	case n > 160:
		meta = 60
		notes = append(notes, "Meta description is too long — keep it under 160 characters.")
	case n >= 30:
		meta = 70
	default:
		meta = 20
		notes = append(notes, "Meta description is short or missing — add a clear 50-160 char meta description.")
	}

	onpage = title*0.55 + meta*0.35 + h*0.10

	return clamp(content), clamp(technical), clamp(onpage), notes
}

// ComputeOverallScore blends the subscores with DefaultWeights.
func ComputeOverallScore(f *analyzer.Features) Result {
	content, technical, onpage, notes := ComputeSubscores(f)
	w := DefaultWeights

	overall := clamp(content*w.Content + technical*w.Technical + onpage*w.Onpage)

	return Result{
		OverallScore: round2(overall),
		Breakdown: Breakdown{
			Content:   round2(content),
			Technical: round2(technical),
			Onpage:    round2(onpage),
		},
		Weights: w,
		Notes:   notes,
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// round2 rounds half to even, matching banker's rounding of reported scores.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
