package scorer

import (
	"math/rand"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var sampleParagraphs = []string{
	"This article explains the main ideas in simple language.",
	"Learn practical tips and best practices to improve results.",
	"We include clear examples and step-by-step instructions.",
	"This section covers actionable suggestions for readers.",
	"Discover easy ways to apply these ideas in real projects.",
}

var keywordPool = []string{
	"seo", "marketing", "content", "rank", "optimization", "blog", "ecommerce",
	"performance", "sitemap", "meta", "title", "backlink",
}

// Sample is one labelled training row.
type Sample struct {
	Features FeatureVector
	Label    float64
}

// Synthesize generates n random pages deterministically from seed and
// labels them with Label.
func Synthesize(n int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	titler := cases.Title(language.English)

	samples := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		page := randomPage(rng, titler)
		signals := MergeSignals(PageSignals{Domain: "example.com"}, page)
		v := ExtractFeatures(signals, page, page.Keywords)
		samples = append(samples, Sample{Features: v, Label: Label(v)})
	}
	return samples
}

func randomPage(rng *rand.Rand, titler cases.Caser) PageContent {
	return PageContent{
		Title:         titler.String(strings.Join(pick(rng, keywordPool, 1+rng.Intn(3)), " ")),
		Article:       randomArticle(rng, 1+rng.Intn(4)),
		Keywords:      pick(rng, keywordPool, 1+rng.Intn(4)),
		HeadingCount:  rng.Intn(5),
		ImagesCount:   rng.Intn(4),
		InternalLinks: rng.Intn(4),
		ExternalLinks: rng.Intn(4),
		Canonical:     rng.Intn(2) == 1,
	}
}

func randomArticle(rng *rand.Rand, paragraphs int) string {
	paras := make([]string, 0, paragraphs)
	for i := 0; i < paragraphs; i++ {
		p := sampleParagraphs[rng.Intn(len(sampleParagraphs))]
		if rng.Float64() < 0.45 {
			p += " " + keywordPool[rng.Intn(len(keywordPool))]
		}
		paras = append(paras, p)
	}
	return strings.Join(paras, "\n\n")
}

// pick draws k distinct items.
func pick(rng *rand.Rand, pool []string, k int) []string {
	out := make([]string, 0, k)
	for _, i := range rng.Perm(len(pool))[:k] {
		out = append(out, pool[i])
	}
	return out
}
