package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Static implements Provider by fetching the search surface's HTML directly
// and parsing it without script execution. It is the fallback when browser
// automation is unavailable; result markup is less stable this way, so the
// rendering provider is preferred.
type Static struct {
	BaseURL    string // search surface root, e.g. https://www.google.com
	HTTPClient *http.Client
	UserAgent  string
	Filter     Filter
}

func (s *Static) Name() string { return "static" }

func (s *Static) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	if strings.TrimSpace(s.BaseURL) == "" {
		return nil, fmt.Errorf("missing search base url")
	}
	if limit <= 0 {
		limit = 10
	}
	u := strings.TrimRight(s.BaseURL, "/") + "/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search status: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}
	raw := make([]Result, 0, limit)
	doc.Find("div.g").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Find("a").First().Attr("href")
		if !ok {
			return
		}
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		raw = append(raw, Result{Title: title, URL: strings.TrimSpace(href)})
	})
	out := s.Filter.Apply(raw)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
