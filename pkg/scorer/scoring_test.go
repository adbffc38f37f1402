package scorer

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"seo-ai/pkg/analyzer"
)

func sampleFeatures() *analyzer.Features {
	return &analyzer.Features{
		Title:            "Best Pancake Recipes",
		MetaDescription:  "Easy pancake recipes to start your day",
		Headings:         []analyzer.Heading{{Tag: "h1", Text: "Best Pancake Recipes"}},
		ImagesMissingAlt: 1,
		LinksCount:       2,
		HasSchema:        false,
		WordCount:        250,
		Readability:      analyzer.Readability{Flesch: 65},
	}
}

func TestComputeOverallScore_Sample(t *testing.T) {
	result := ComputeOverallScore(sampleFeatures())

	want := Breakdown{Content: 70, Technical: 67.5, Onpage: 73}
	if result.Breakdown != want {
		t.Errorf("Expected breakdown %+v, got: %+v", want, result.Breakdown)
	}
	if result.OverallScore != 70.12 {
		t.Errorf("Expected overall 70.12, got: %v", result.OverallScore)
	}
	if result.Weights != DefaultWeights {
		t.Errorf("Expected default weights echoed, got: %+v", result.Weights)
	}

	wantNotes := []string{
		"No structured data (JSON-LD) detected — adding Schema can help rich results.",
		"1 images missing alt text — add alt attributes to images.",
	}
	if !reflect.DeepEqual(result.Notes, wantNotes) {
		t.Errorf("Expected notes %q, got: %q", wantNotes, result.Notes)
	}
}

func TestComputeSubscores_EmptyPage(t *testing.T) {
	content, technical, onpage, notes := ComputeSubscores(&analyzer.Features{})

	// wc 10, read 40, h 40
	if !approx(content, 10*0.5+40*0.3+40*0.2) {
		t.Errorf("Unexpected content score: %v", content)
	}
	if !approx(technical, 60*0.35+100*0.35+20*0.30) {
		t.Errorf("Unexpected technical score: %v", technical)
	}
	if !approx(onpage, 30*0.55+20*0.35+40*0.10) {
		t.Errorf("Unexpected onpage score: %v", onpage)
	}
	if len(notes) != 6 {
		t.Errorf("Expected 6 notes, got %d: %q", len(notes), notes)
	}
}

func TestComputeSubscores_StrongPage(t *testing.T) {
	f := &analyzer.Features{
		Title:           strings.Repeat("a", 55),
		MetaDescription: strings.Repeat("b", 120),
		Headings:        []analyzer.Heading{{Tag: "H1", Text: "x"}},
		LinksCount:      5,
		HasSchema:       true,
		WordCount:       1500,
		Readability:     analyzer.Readability{Flesch: 72},
	}

	result := ComputeOverallScore(f)
	if result.OverallScore != 100 {
		t.Errorf("Expected a perfect score, got: %v", result.OverallScore)
	}
	if len(result.Notes) != 0 {
		t.Errorf("Expected no notes, got: %q", result.Notes)
	}
}

func TestComputeSubscores_LongTitleAndMeta(t *testing.T) {
	f := sampleFeatures()
	f.Title = strings.Repeat("t", 71)
	f.MetaDescription = strings.Repeat("m", 161)
	f.ImagesMissingAlt = 12

	_, technical, onpage, notes := ComputeSubscores(f)

	if want := 60*0.35 + 20*0.35 + 50*0.30; !approx(technical, want) {
		t.Errorf("Expected image score floored at 20 (technical %v), got: %v", want, technical)
	}
	if want := 60*0.55 + 60*0.35 + 100*0.10; !approx(onpage, want) {
		t.Errorf("Expected onpage %v, got: %v", want, onpage)
	}
	joined := strings.Join(notes, "|")
	for _, fragment := range []string{"Title is long", "Meta description is too long"} {
		if !strings.Contains(joined, fragment) {
			t.Errorf("Expected a note containing %q, got: %q", fragment, notes)
		}
	}
}

func TestRound2_HalfEven(t *testing.T) {
	if got := round2(70.125); got != 70.12 {
		t.Errorf("Expected 70.12, got: %v", got)
	}
	if got := round2(0.375); got != 0.38 {
		t.Errorf("Expected 0.38, got: %v", got)
	}
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
