package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestExtract_AcceptsQualifyingContainer(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("content words here ", 40)) // > 500 chars
	html := `<html><body>
		<nav>site navigation</nav>
		<article><p>` + long + `</p></article>
		<footer>site footer</footer>
	</body></html>`

	e := &Extractor{}
	got, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if got != long {
		t.Fatalf("expected container text exactly:\nwant %q\ngot  %q", long, got)
	}
}

func TestExtract_StripsNonContentNodes(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("real article text ", 40))
	html := `<html><body><article>
		<script>var junk = 1;</script>
		<div class="advertisement">buy things</div>
		<p>` + long + `</p>
	</article></body></html>`

	e := &Extractor{}
	got, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if strings.Contains(got, "junk") || strings.Contains(got, "buy things") {
		t.Fatalf("boilerplate survived extraction: %q", got)
	}
}

func TestExtract_SelectorPriorityOrder(t *testing.T) {
	articleText := strings.TrimSpace(strings.Repeat("from the article element ", 30))
	divText := strings.TrimSpace(strings.Repeat("from the content div ", 30))
	html := `<html><body>
		<div class="content"><p>` + divText + `</p></div>
		<article><p>` + articleText + `</p></article>
	</body></html>`

	e := &Extractor{}
	got, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if got != articleText {
		t.Fatalf("expected the article element to win over .content, got %q", got)
	}
}

func TestExtract_ParagraphFallback(t *testing.T) {
	p1 := "This opening paragraph carries more than enough characters to clear the per-paragraph fallback threshold comfortably and to count toward the document minimum."
	p2 := "A second paragraph, also long enough to be collected by the fallback pass, should follow the first one in document order with a blank line between them."
	html := `<html><body>
		<p>short</p>
		<p>` + p1 + `</p>
		<p>` + p2 + `</p>
	</body></html>`

	e := &Extractor{}
	got, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	want := p1 + "\n\n" + p2
	if got != want {
		t.Fatalf("expected paragraph concatenation:\nwant %q\ngot  %q", want, got)
	}
}

func TestExtract_InsufficientContent(t *testing.T) {
	html := `<html><body><p>Far too little text to count as an article.</p></body></html>`
	e := &Extractor{}
	_, err := e.Extract([]byte(html))
	if !errors.Is(err, ErrInsufficientContent) {
		t.Fatalf("expected ErrInsufficientContent, got %v", err)
	}
}

func TestExtract_ConfiguredThresholds(t *testing.T) {
	html := `<html><body><article><p>A configured-down container threshold accepts this much shorter block of article text.</p></article></body></html>`
	e := &Extractor{MinContainerChars: 50, MinDocumentChars: 50}
	got, err := e.Extract([]byte(html))
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if !strings.Contains(got, "configured-down") {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestPageMeta(t *testing.T) {
	html := `<html><head>
		<title>Page Title</title>
		<meta name="description" content="A summary.">
		<meta name="author" content="J. Writer">
		<meta property="article:published_time" content="2024-05-01T10:00:00Z">
	</head><body><h1>Heading</h1></body></html>`

	m := PageMeta([]byte(html))
	if m.Title != "Page Title" {
		t.Fatalf("title: %q", m.Title)
	}
	if m.Description != "A summary." {
		t.Fatalf("description: %q", m.Description)
	}
	if m.Author != "J. Writer" {
		t.Fatalf("author: %q", m.Author)
	}
	if m.Published != "2024-05-01T10:00:00Z" {
		t.Fatalf("published: %q", m.Published)
	}
}

func TestPageMeta_FallsBackToOpenGraph(t *testing.T) {
	html := `<html><head>
		<meta property="og:title" content="OG Title">
	</head><body></body></html>`
	m := PageMeta([]byte(html))
	if m.Title != "OG Title" {
		t.Fatalf("expected og:title fallback, got %q", m.Title)
	}
}
