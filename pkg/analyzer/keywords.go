package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

var keywordToken = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)

type termCount struct {
	term  string
	count int
}

// TopKeywords picks frequent phrases from text. Up to max/2 slots go to the
// most frequent bigrams, the rest are filled with unigrams. Ties keep first
// occurrence order.
func TopKeywords(text string, max int) []string {
	text = strings.TrimSpace(text)
	if text == "" || max <= 0 {
		return []string{}
	}

	words := keywordToken.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return []string{}
	}

	unigrams := countTerms(words)
	bigramTerms := make([]string, 0, len(words))
	for i := 0; i+1 < len(words); i++ {
		bigramTerms = append(bigramTerms, words[i]+" "+words[i+1])
	}
	bigrams := countTerms(bigramTerms)

	results := make([]string, 0, max)
	seen := make(map[string]bool)
	for _, bc := range bigrams {
		if len(results) >= max/2 {
			break
		}
		results = append(results, bc.term)
		seen[bc.term] = true
	}
	for _, uc := range unigrams {
		if len(results) >= max {
			break
		}
		if !seen[uc.term] {
			results = append(results, uc.term)
			seen[uc.term] = true
		}
	}
	return results
}

// countTerms counts terms and sorts them by descending frequency, keeping
// first-seen order among equals.
func countTerms(terms []string) []termCount {
	index := make(map[string]int)
	var counts []termCount
	for _, t := range terms {
		if i, ok := index[t]; ok {
			counts[i].count++
			continue
		}
		index[t] = len(counts)
		counts = append(counts, termCount{term: t, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts
}
