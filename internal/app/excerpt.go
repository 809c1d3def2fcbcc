package app

import (
	"strings"

	"golang.org/x/net/html"
)

// deriveExcerpt builds a short plain-text preview from an HTML body: markup
// stripped, whitespace collapsed, cut at maxChars characters with a trailing
// ellipsis. Used when the draft carries no excerpt of its own.
func deriveExcerpt(body string, maxChars int) string {
	if maxChars <= 0 {
		maxChars = 200
	}
	text := collapseSpaces(stripMarkup(body))
	runes := []rune(text)
	if len(runes) > maxChars {
		runes = runes[:maxChars]
	}
	return strings.TrimSpace(string(runes)) + "..."
}

// stripMarkup collects text nodes, skipping script and style contents. Input
// that is not valid HTML degrades gracefully since the parser never fails on
// plain text.
func stripMarkup(s string) string {
	node, err := html.Parse(strings.NewReader(s))
	if err != nil || node == nil {
		return s
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			name := strings.ToLower(n.Data)
			if name == "script" || name == "style" {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return b.String()
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(s) {
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
