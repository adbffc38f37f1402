package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Heading is one h1-h6 element in document order.
type Heading struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// Meta holds the on-page SEO signals read from the document structure.
type Meta struct {
	Title            string    `json:"title"`
	MetaDescription  string    `json:"meta_description"`
	Headings         []Heading `json:"headings"`
	ImagesTotal      int       `json:"images_total"`
	ImagesMissingAlt int       `json:"images_missing_alt"`
	LinksCount       int       `json:"links_count"`
	HasSchema        bool      `json:"has_schema"`
}

// ExtractMeta reads the title, meta description, headings, image alt stats,
// link count and JSON-LD presence.
func ExtractMeta(doc *goquery.Document) Meta {
	meta := Meta{
		Title:    strings.TrimSpace(doc.Find("title").First().Text()),
		Headings: []Heading{},
	}

	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		meta.MetaDescription = strings.TrimSpace(content)
	}

	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		meta.Headings = append(meta.Headings, Heading{
			Tag:  goquery.NodeName(s),
			Text: strippedText(s),
		})
	})

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		meta.ImagesTotal++
		if alt, ok := s.Attr("alt"); !ok || alt == "" {
			meta.ImagesMissingAlt++
		}
	})

	meta.LinksCount = doc.Find("a[href]").Length()

	meta.HasSchema = doc.Find(`script[type="application/ld+json"]`).Length() > 0
	return meta
}

// ExtractText returns the visible text of the document: script, style and
// noscript content removed, text nodes joined by single spaces.
func ExtractText(doc *goquery.Document) string {
	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// strippedText concatenates the trimmed text nodes under s.
func strippedText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		var parts []string
		collectAllText(n, &parts)
		for _, p := range parts {
			b.WriteString(strings.TrimSpace(p))
		}
	}
	return b.String()
}

func collectAllText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectAllText(c, parts)
	}
}

// ParseHTML builds a queryable document from raw markup.
func ParseHTML(markup string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(markup))
}
