package app

import "time"

// Config holds runtime configuration for one enhancement run.
type Config struct {
	// Content store
	StoreURL string

	// LLM
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	// Search
	SearchBaseURL string
	UseBrowser    bool
	ResultLimit   int

	// Scraping / selection policy
	ReferenceCount   int // how many top results to scrape
	MinSearchResults int // below this the run aborts
	MinReferences    int // surviving documents needed to proceed

	// Filtering and extraction lists; empty means package defaults.
	Denylist           []string
	StripSelectors     []string
	ContainerSelectors []string

	// Quality thresholds; zero means component defaults.
	MinContainerChars int
	MinParagraphChars int
	MinDocumentChars  int
	PreviewChars      int
	MinBodyChars      int
	MaxTokens         int
	ExcerptChars      int

	// Transport
	UserAgent      string
	RequestTimeout time.Duration
	BrowserTimeout time.Duration

	Verbose bool
}

// DefaultDenylist drops URL shapes that never make useful reference
// articles: video hosting, social networks, and PDF documents. Self-links
// back to the search surface are filtered separately by host.
var DefaultDenylist = []string{
	"youtube.com",
	"facebook.com",
	"twitter.com",
	".pdf",
}
