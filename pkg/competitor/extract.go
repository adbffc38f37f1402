package competitor

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"seo-ai/pkg/analyzer"
)

const (
	excerptLimit  = 2000
	keywordLimit  = 10
	minKeywordLen = 4
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// PageFeatures summarises a competitor page.
type PageFeatures struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	H1              string   `json:"h1"`
	Headings        []string `json:"headings"`
	WordCount       int      `json:"word_count"`
	TopKeywords     []string `json:"top_keywords"`
	Images          int      `json:"images"`
	InternalLinks   int      `json:"internal_links"`
	ExternalLinks   int      `json:"external_links"`
	TextExcerpt     string   `json:"text_excerpt,omitempty"`
	MainContent     string   `json:"main_content,omitempty"`
}

// empty reports whether f is nil or carries no field at all, as when the
// caller sends an empty object.
func (f *PageFeatures) empty() bool {
	if f == nil {
		return true
	}
	return f.Title == "" && f.MetaDescription == "" && f.H1 == "" &&
		len(f.Headings) == 0 && f.WordCount == 0 && len(f.TopKeywords) == 0 &&
		f.Images == 0 && f.InternalLinks == 0 && f.ExternalLinks == 0 &&
		f.TextExcerpt == "" && f.MainContent == ""
}

// ExtractFeatures parses markup fetched from pageURL. Links whose host is
// empty or equal to the page host count as internal.
func ExtractFeatures(markup, pageURL string) (*PageFeatures, error) {
	doc, err := analyzer.ParseHTML(markup)
	if err != nil {
		return nil, err
	}

	f := &PageFeatures{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Headings: []string{},
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && strings.TrimSpace(content) != "" {
		f.MetaDescription = strings.TrimSpace(content)
	} else if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		f.MetaDescription = strings.TrimSpace(content)
	}

	f.H1 = collapse(doc.Find("h1").First().Text())
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		f.Headings = append(f.Headings, collapse(s.Text()))
	})

	text := analyzer.ExtractText(doc)
	words := wordPattern.FindAllString(text, -1)
	f.WordCount = len(words)
	f.TopKeywords = frequentWords(words, keywordLimit)
	f.TextExcerpt = firstRunes(text, excerptLimit)

	f.Images = doc.Find("img").Length()

	var host string
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Host
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		if u.Host == "" || u.Host == host {
			f.InternalLinks++
		} else {
			f.ExternalLinks++
		}
	})

	return f, nil
}

// MainContent returns the readable article body of markup, or "" when none
// can be isolated.
func MainContent(markup, pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(strings.NewReader(markup), u)
	if err != nil {
		return ""
	}
	return firstRunes(collapse(article.TextContent), excerptLimit)
}

// frequentWords returns the most common words longer than three characters,
// ties broken by first appearance.
func frequentWords(words []string, limit int) []string {
	counts := map[string]int{}
	var order []string
	for _, w := range words {
		if utf8.RuneCountInString(w) < minKeywordLen {
			continue
		}
		w = strings.ToLower(w)
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}
	if order == nil {
		return []string{}
	}
	return order
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
