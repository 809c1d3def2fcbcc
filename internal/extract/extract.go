package extract

import (
	"bytes"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrInsufficientContent reports that a page yielded too little prose to be
// useful as a reference. It is an "insufficient content" outcome, not a
// parse error.
var ErrInsufficientContent = errors.New("insufficient content extracted")

// DefaultStripSelectors are non-content nodes removed before extraction.
var DefaultStripSelectors = []string{
	"script", "style", "nav", "header", "footer", "iframe", "noscript",
	".advertisement", ".ads", ".social-share",
}

// DefaultContainerSelectors are tried in order, most semantic first. The
// ordering decides which pages succeed, so changes to it are behavior
// changes, not cleanups.
var DefaultContainerSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	".post-content",
	".article-content",
	".entry-content",
	".content",
	"#content",
	".post-body",
}

// Extractor turns raw HTML into clean prose text. It is a pure function of
// its input; no network access happens here.
type Extractor struct {
	// StripSelectors and ContainerSelectors default to the package lists
	// when empty; both are meant to come from configuration.
	StripSelectors     []string
	ContainerSelectors []string
	// MinContainerChars is the acceptance threshold for a content container.
	// Zero means 500.
	MinContainerChars int
	// MinParagraphChars is the minimum trimmed length for a paragraph to be
	// kept by the fallback. Zero means 50.
	MinParagraphChars int
	// MinDocumentChars is the minimum final text length. Zero means 200.
	MinDocumentChars int
}

// Extract runs the selector-priority algorithm: strip boilerplate, try
// content containers in order, fall back to paragraph collection, normalize,
// and reject documents that end up too short.
func (e *Extractor) Extract(htmlBody []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return "", err
	}
	doc.Find(strings.Join(e.stripSelectors(), ", ")).Remove()

	minContainer := e.MinContainerChars
	if minContainer <= 0 {
		minContainer = 500
	}
	var content string
	for _, selector := range e.containerSelectors() {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		text := normalizeWhitespace(sel.Text())
		if len(text) > minContainer {
			content = text
			break
		}
	}

	if content == "" {
		minParagraph := e.MinParagraphChars
		if minParagraph <= 0 {
			minParagraph = 50
		}
		var paragraphs []string
		doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if len(text) > minParagraph {
				paragraphs = append(paragraphs, collapseSpaces(text))
			}
		})
		content = strings.Join(paragraphs, "\n\n")
	}

	minDocument := e.MinDocumentChars
	if minDocument <= 0 {
		minDocument = 200
	}
	if len(content) < minDocument {
		return "", ErrInsufficientContent
	}
	return content, nil
}

func (e *Extractor) stripSelectors() []string {
	if len(e.StripSelectors) > 0 {
		return e.StripSelectors
	}
	return DefaultStripSelectors
}

func (e *Extractor) containerSelectors() []string {
	if len(e.ContainerSelectors) > 0 {
		return e.ContainerSelectors
	}
	return DefaultContainerSelectors
}

// normalizeWhitespace collapses space runs within lines and multiple blank
// lines to one, trimming the result.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			// Keep at most one consecutive blank
			if len(out) > 0 && out[len(out)-1] == "" {
				continue
			}
			if len(out) > 0 {
				out = append(out, "")
			}
			continue
		}
		out = append(out, collapseSpaces(trimmed))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
			continue
		}
		b.WriteRune(r)
		lastSpace = false
	}
	return b.String()
}
