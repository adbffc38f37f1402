package generator

import (
	"fmt"
	"math"
	"strings"
)

const maxPromptKeywords = 8

// PromptFeatures is the slice of analyzer output the prompt templates read.
type PromptFeatures struct {
	Title           string   `json:"title"`
	MetaDescription string   `json:"meta_description"`
	TopKeywords     []string `json:"top_keywords"`
	Domain          string   `json:"domain"`
	URL             string   `json:"url"`
	WordCount       int      `json:"word_count"`
	Text            string   `json:"text"`
}

// BuildPrompt renders the instruction sent to the LLM for kind.
func BuildPrompt(f PromptFeatures, kind string) string {
	title := strings.TrimSpace(f.Title)
	desc := strings.TrimSpace(f.MetaDescription)
	keywords := "none"
	if len(f.TopKeywords) > 0 {
		kw := f.TopKeywords
		if len(kw) > maxPromptKeywords {
			kw = kw[:maxPromptKeywords]
		}
		keywords = strings.Join(kw, ", ")
	}
	domain := f.Domain
	if domain == "" {
		domain = f.URL
	}

	switch kind {
	case "title":
		return "Write 3 concise, click-enticing SEO titles (each <= 70 characters). " +
			fmt.Sprintf("Use the primary keywords: %s. ", keywords) +
			fmt.Sprintf("Current title: '%s'. Target audience: general readers. ", title) +
			"Return a JSON array of the 3 titles only."
	case "meta":
		return "Write 3 SEO meta descriptions (<= 155 characters). " +
			fmt.Sprintf("Include keywords: %s. ", keywords) +
			fmt.Sprintf("Current meta: '%s'. Make them informative, with a subtle CTA. ", desc) +
			"Return a JSON array of the 3 meta descriptions only."
	case "article":
		return fmt.Sprintf("Write an SEO-optimized article (~%d words) for the page. ", TargetWords(f.WordCount)) +
			fmt.Sprintf("Title: '%s'. Primary keywords: %s. Domain: %s. ", title, keywords, domain) +
			"Structure:\n" +
			"- Start with a 2-3 sentence introduction including the main keywords.\n" +
			"- Include at least 3 H2 headings with 2-4 short paragraphs under each.\n" +
			"- Add 2 bullet lists: one for 'key takeaways', one for 'quick tips'.\n" +
			"- End with a short conclusion and call-to-action (CTA).\n" +
			"- Use natural tone, short paragraphs, and real-world SEO writing style.\n" +
			"Return plain text. Also provide a short 40-word 'summary' and a 3-sentence 'social share blurb'."
	}

	if text := truncate(f.Text, 800); text != "" {
		return text
	}
	return "Write an SEO-optimized paragraph."
}

// TargetWords is the article length requested for a page of wordCount words.
func TargetWords(wordCount int) int {
	if wordCount < 600 {
		return 700
	}
	return int(math.Max(500, math.Floor(float64(wordCount)*1.2)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
