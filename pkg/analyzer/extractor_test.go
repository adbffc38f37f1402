package analyzer

import (
	"reflect"
	"testing"
)

const samplePage = `<html>
<head>
  <title>  Best Pancake Recipes  </title>
  <meta name="description" content=" Easy pancake recipes to start your day ">
  <script type="application/ld+json">{"@type":"Recipe"}</script>
  <style>body { color: red; }</style>
</head>
<body>
  <h1>Fluffy <em>Pancakes</em></h1>
  <p>Mix flour and milk.</p>
  <h2>Toppings</h2>
  <img src="a.png" alt="stack of pancakes">
  <img src="b.png" alt="">
  <img src="c.png">
  <a href="/recipes">Recipes</a>
  <a href="https://other.example.org/">Other</a>
  <a name="anchor">No href</a>
  <script>var tracking = "ignore me";</script>
  <noscript>enable js</noscript>
</body>
</html>`

func TestExtractMeta(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	meta := ExtractMeta(doc)

	if meta.Title != "Best Pancake Recipes" {
		t.Errorf("Unexpected title: %q", meta.Title)
	}
	if meta.MetaDescription != "Easy pancake recipes to start your day" {
		t.Errorf("Unexpected meta description: %q", meta.MetaDescription)
	}
	wantHeadings := []Heading{{Tag: "h1", Text: "FluffyPancakes"}, {Tag: "h2", Text: "Toppings"}}
	if !reflect.DeepEqual(meta.Headings, wantHeadings) {
		t.Errorf("Unexpected headings: %+v", meta.Headings)
	}
	if meta.ImagesTotal != 3 || meta.ImagesMissingAlt != 2 {
		t.Errorf("Expected 3 images with 2 missing alt, got %d/%d", meta.ImagesTotal, meta.ImagesMissingAlt)
	}
	if meta.LinksCount != 2 {
		t.Errorf("Expected 2 links, got: %d", meta.LinksCount)
	}
	if !meta.HasSchema {
		t.Error("Expected JSON-LD schema to be detected")
	}
}

func TestExtractText_DropsScriptsAndCollapsesWhitespace(t *testing.T) {
	doc, err := ParseHTML(samplePage)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	text := ExtractText(doc)
	want := "Best Pancake Recipes Fluffy Pancakes Mix flour and milk. Toppings Recipes Other No href"
	if text != want {
		t.Errorf("Unexpected text:\n got: %q\nwant: %q", text, want)
	}
}

func TestExtractMeta_EmptyDocument(t *testing.T) {
	doc, err := ParseHTML("")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	meta := ExtractMeta(doc)
	if meta.Title != "" || meta.MetaDescription != "" || len(meta.Headings) != 0 || meta.HasSchema {
		t.Errorf("Expected empty meta, got: %+v", meta)
	}
	if meta.Headings == nil {
		t.Error("Expected headings to be an empty slice, not nil")
	}
}

func TestTopKeywords(t *testing.T) {
	text := "Pancake recipes are easy. Pancake recipes for breakfast. Breakfast pancake ideas."
	got := TopKeywords(text, 4)
	want := []string{"pancake recipes", "recipes are", "pancake", "recipes"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopKeywords = %v, want %v", got, want)
	}

	if got := TopKeywords("   ", 5); len(got) != 0 {
		t.Errorf("Expected no keywords for blank text, got: %v", got)
	}
	if got := TopKeywords("a an of to", 5); len(got) != 0 {
		t.Errorf("Expected no keywords when every token is short, got: %v", got)
	}
}
