package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Meta holds best-effort page metadata. Every field may be empty.
type Meta struct {
	Title       string
	Description string
	Author      string
	Published   string
}

// PageMeta reads common metadata tags from a page, preferring explicit
// OpenGraph/meta values over markup-derived fallbacks.
func PageMeta(htmlBody []byte) Meta {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBody))
	if err != nil {
		return Meta{}
	}
	m := Meta{
		Title: firstNonEmpty(
			strings.TrimSpace(doc.Find("title").First().Text()),
			metaContent(doc, `meta[property="og:title"]`),
			strings.TrimSpace(doc.Find("h1").First().Text()),
		),
		Description: firstNonEmpty(
			metaContent(doc, `meta[name="description"]`),
			metaContent(doc, `meta[property="og:description"]`),
		),
		Author: firstNonEmpty(
			metaContent(doc, `meta[name="author"]`),
			strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text()),
		),
		Published: metaContent(doc, `meta[property="article:published_time"]`),
	}
	if m.Published == "" {
		if dt, ok := doc.Find("time").First().Attr("datetime"); ok {
			m.Published = strings.TrimSpace(dt)
		}
	}
	return m
}

func metaContent(doc *goquery.Document, selector string) string {
	if v, ok := doc.Find(selector).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
