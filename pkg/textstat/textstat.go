// Package textstat computes English readability statistics.
package textstat

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

var (
	sentencePattern = regexp.MustCompile(`\b[^.!?]+[.!?]*`)
	vowelGroups     = regexp.MustCompile(`[aeiouy]+`)
)

// Scores bundles the metrics the analyzer reports for a block of text.
type Scores struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	SmogIndex          float64 `json:"smog_index"`
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
}

// Compute returns all metrics for text. Blank text yields zero values.
func Compute(text string) Scores {
	text = strings.TrimSpace(text)
	if text == "" {
		return Scores{}
	}
	return Scores{
		FleschReadingEase:  FleschReadingEase(text),
		FleschKincaidGrade: FleschKincaidGrade(text),
		SmogIndex:          SmogIndex(text),
		WordCount:          LexiconCount(text),
		SentenceCount:      SentenceCount(text),
	}
}

// FleschReadingEase scores text from roughly 0 (hard) to 100 (easy).
func FleschReadingEase(text string) float64 {
	words := LexiconCount(text)
	if words == 0 {
		return 0
	}
	sentences := float64(SentenceCount(text))
	asl := float64(words) / sentences
	asw := float64(SyllableCount(text)) / float64(words)
	return round2(206.835 - 1.015*asl - 84.6*asw)
}

// FleschKincaidGrade maps text to a US school grade level.
func FleschKincaidGrade(text string) float64 {
	words := LexiconCount(text)
	if words == 0 {
		return 0
	}
	sentences := float64(SentenceCount(text))
	asl := float64(words) / sentences
	asw := float64(SyllableCount(text)) / float64(words)
	return round2(0.39*asl + 11.8*asw - 15.59)
}

// SmogIndex needs at least three sentences and returns 0 otherwise.
func SmogIndex(text string) float64 {
	sentences := SentenceCount(text)
	if sentences < 3 {
		return 0
	}
	poly := 0
	for _, w := range words(text) {
		if syllables(w) >= 3 {
			poly++
		}
	}
	return round2(1.043*math.Sqrt(float64(poly)*30/float64(sentences)) + 3.1291)
}

// LexiconCount counts whitespace separated words after removing punctuation.
func LexiconCount(text string) int {
	return len(words(text))
}

// SentenceCount counts sentences, ignoring fragments of two words or fewer.
// It never returns less than 1.
func SentenceCount(text string) int {
	sentences := sentencePattern.FindAllString(text, -1)
	ignored := 0
	for _, s := range sentences {
		if LexiconCount(s) <= 2 {
			ignored++
		}
	}
	if n := len(sentences) - ignored; n > 1 {
		return n
	}
	return 1
}

// SyllableCount sums the estimated syllables of every word in text.
func SyllableCount(text string) int {
	total := 0
	for _, w := range words(text) {
		total += syllables(w)
	}
	return total
}

func words(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, text)
	return strings.Fields(cleaned)
}

// syllables estimates the syllables of a single English word by counting
// vowel groups, with a silent trailing e.
func syllables(word string) int {
	w := strings.ToLower(word)
	if w == "" {
		return 0
	}
	count := len(vowelGroups.FindAllString(w, -1))
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
