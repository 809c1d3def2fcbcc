package search

import (
	"context"
	"net/url"
	"strings"
)

// Result represents a single organic hit from the search surface.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Provider is a minimal interface for search strategies. Implementations
// return results already filtered, in the order supplied by the surface.
// Zero or one result is not an error at this layer; the caller decides
// whether that is sufficient.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// Filter drops unusable candidates while preserving order. Denylist entries
// are matched as lowercase substrings of the URL, so both host patterns
// ("youtube.com") and extension patterns (".pdf") work. SearchHost drops
// self-links back to the search surface itself.
type Filter struct {
	Denylist   []string
	SearchHost string
}

// Apply returns the results that survive filtering, original order intact.
func (f Filter) Apply(results []Result) []Result {
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Title) == "" {
			continue
		}
		if f.denied(r.URL) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (f Filter) denied(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range f.Denylist {
		p := strings.ToLower(strings.TrimSpace(pattern))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}
	if f.SearchHost != "" {
		if u, err := url.Parse(rawURL); err == nil {
			host := strings.ToLower(u.Hostname())
			self := strings.ToLower(f.SearchHost)
			if host == self || strings.HasSuffix(host, "."+self) {
				return true
			}
		}
	}
	return false
}
