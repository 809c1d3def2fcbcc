package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/contentops/goenhance/internal/extract"
	"github.com/contentops/goenhance/internal/fetch"
	"github.com/contentops/goenhance/internal/llm"
	"github.com/contentops/goenhance/internal/search"
	"github.com/contentops/goenhance/internal/store"
	"github.com/contentops/goenhance/internal/synth"
)

// articleStore is the slice of the content store client the pipeline needs.
type articleStore interface {
	Latest(ctx context.Context) (*store.Article, error)
	Create(ctx context.Context, d store.Draft) (*store.Article, error)
}

// pageGetter abstracts the minimal fetch method used for tests.
type pageGetter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// rewriter abstracts the synthesizer for tests.
type rewriter interface {
	Rewrite(ctx context.Context, original *store.Article, refs []synth.Reference) (string, error)
}

// App wires the pipeline components for one run-to-completion execution.
type App struct {
	cfg       Config
	store     articleStore
	provider  search.Provider
	pages     pageGetter
	extractor *extract.Extractor
	rewriter  rewriter
}

// New constructs the pipeline from configuration. All HTTP clients and the
// search strategy are built here and passed in explicitly; nothing reaches
// for shared global state.
func New(cfg Config) *App {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	denylist := cfg.Denylist
	if len(denylist) == 0 {
		denylist = DefaultDenylist
	}
	searchBase := cfg.SearchBaseURL
	if searchBase == "" {
		searchBase = "https://www.google.com"
	}
	filter := search.Filter{Denylist: denylist, SearchHost: hostOf(searchBase)}

	var provider search.Provider
	if cfg.UseBrowser {
		provider = &search.Browser{
			BaseURL:   searchBase,
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.BrowserTimeout,
			Filter:    filter,
		}
	} else {
		provider = &search.Static{
			BaseURL:    searchBase,
			HTTPClient: &http.Client{Timeout: timeout},
			UserAgent:  cfg.UserAgent,
			Filter:     filter,
		}
	}

	transportCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	if cfg.LLMBaseURL != "" {
		transportCfg.BaseURL = cfg.LLMBaseURL
	}
	ai := openai.NewClientWithConfig(transportCfg)

	return &App{
		cfg: cfg,
		store: &store.Client{
			BaseURL:    cfg.StoreURL,
			HTTPClient: &http.Client{Timeout: timeout},
			UserAgent:  cfg.UserAgent,
		},
		provider: provider,
		pages: &fetch.Client{
			UserAgent:         cfg.UserAgent,
			PerRequestTimeout: timeout,
		},
		extractor: &extract.Extractor{
			StripSelectors:     cfg.StripSelectors,
			ContainerSelectors: cfg.ContainerSelectors,
			MinContainerChars:  cfg.MinContainerChars,
			MinParagraphChars:  cfg.MinParagraphChars,
			MinDocumentChars:   cfg.MinDocumentChars,
		},
		rewriter: &synth.Synthesizer{
			Client:       &llm.OpenAIProvider{Inner: ai},
			Model:        cfg.LLMModel,
			MaxTokens:    cfg.MaxTokens,
			PreviewChars: cfg.PreviewChars,
			MinBodyChars: cfg.MinBodyChars,
		},
	}
}

// Run executes one enhancement pass: fetch the eligible original, search for
// competing articles, scrape the top candidates, synthesize the rewrite, and
// persist the linked enhanced version. Persistence is strictly last, so a
// failed run leaves no new item behind.
func (a *App) Run(ctx context.Context) error {
	original, err := a.store.Latest(ctx)
	if errors.Is(err, store.ErrNoEligible) {
		log.Info().Msg("no articles eligible for enhancement; nothing to do")
		return nil
	}
	if err != nil {
		return abort(StageFetch, err)
	}
	log.Info().Int("id", original.ID).Str("title", original.Title).Msg("fetched original article")

	limit := a.cfg.ResultLimit
	if limit <= 0 {
		limit = 10
	}
	results, err := a.provider.Search(ctx, original.Title, limit)
	if err != nil {
		return abort(StageSearch, err)
	}
	minResults := a.cfg.MinSearchResults
	if minResults <= 0 {
		minResults = 2
	}
	if len(results) < minResults {
		return abort(StageSearch, fmt.Errorf("%w: got %d, need %d", ErrInsufficientResults, len(results), minResults))
	}
	log.Info().Int("count", len(results)).Str("provider", a.provider.Name()).Msg("search results collected")

	refCount := a.cfg.ReferenceCount
	if refCount <= 0 {
		refCount = 2
	}
	if refCount > len(results) {
		refCount = len(results)
	}
	refs := a.scrape(ctx, results[:refCount])
	if len(refs) == 0 {
		return abort(StageScrape, ErrNoReferenceContent)
	}
	minRefs := a.cfg.MinReferences
	if minRefs <= 0 {
		minRefs = 1
	}
	if len(refs) < minRefs {
		return abort(StageScrape, fmt.Errorf("only %d of %d references scraped, need %d", len(refs), refCount, minRefs))
	}
	log.Info().Int("count", len(refs)).Msg("reference articles scraped")

	body, err := a.rewriter.Rewrite(ctx, original, refs)
	if err != nil {
		return abort(StageSynthesize, err)
	}
	log.Info().Int("chars", len(body)).Msg("enhanced body synthesized")

	references := make([]string, 0, len(refs))
	for _, r := range refs {
		references = append(references, r.URL)
	}
	now := time.Now().UTC()
	originalID := original.ID
	created, err := a.store.Create(ctx, store.Draft{
		Title:             original.Title + " (Enhanced)",
		Content:           body,
		Author:            original.Author,
		PublishedAt:       &now,
		IsUpdated:         true,
		OriginalArticleID: &originalID,
		References:        references,
		Excerpt:           deriveExcerpt(body, a.cfg.ExcerptChars),
	})
	if err != nil {
		return abort(StagePersist, err)
	}
	log.Info().Int("id", created.ID).Int("original_id", original.ID).Msg("enhanced article saved")
	return nil
}

// scrape fetches and extracts each candidate sequentially. Errors are
// isolated per URL: failures are logged and the candidate is dropped rather
// than aborting the run, so one bad page does not stop progress.
func (a *App) scrape(ctx context.Context, candidates []search.Result) []synth.Reference {
	refs := make([]synth.Reference, 0, len(candidates))
	for _, c := range candidates {
		body, err := a.pages.Get(ctx, c.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", c.URL).Msg("fetch failed; dropping candidate")
			continue
		}
		text, err := a.extractor.Extract(body)
		if err != nil {
			log.Warn().Err(err).Str("url", c.URL).Msg("extraction failed; dropping candidate")
			continue
		}
		title := c.Title
		if meta := extract.PageMeta(body); meta.Title != "" {
			title = meta.Title
		}
		log.Debug().Str("url", c.URL).Int("chars", len(text)).Msg("candidate scraped")
		refs = append(refs, synth.Reference{Title: title, URL: c.URL, Text: text})
	}
	return refs
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
