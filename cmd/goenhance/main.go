package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/contentops/goenhance/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		configPath    string
		storeURL      string
		llmBaseURL    string
		llmModel      string
		llmKey        string
		searchURL     string
		useBrowser    bool
		resultLimit   int
		minResults    int
		references    int
		minReferences int
		userAgent     string
		timeout       time.Duration
		verbose       bool
	)

	flag.StringVar(&configPath, "config", os.Getenv("GOENHANCE_CONFIG"), "Path to YAML config file (denylist, selectors, thresholds)")
	flag.StringVar(&storeURL, "store.url", os.Getenv("STORE_URL"), "Content store API base URL")
	flag.StringVar(&llmBaseURL, "llm.base", os.Getenv("LLM_BASE_URL"), "OpenAI-compatible base URL")
	flag.StringVar(&llmModel, "llm.model", os.Getenv("LLM_MODEL"), "Model name")
	flag.StringVar(&llmKey, "llm.key", os.Getenv("LLM_API_KEY"), "API key for OpenAI-compatible server")
	flag.StringVar(&searchURL, "search.url", os.Getenv("SEARCH_URL"), "Search surface base URL (default https://www.google.com)")
	flag.BoolVar(&useBrowser, "search.browser", true, "Render the search surface in a headless browser; disable to use the static HTML fallback")
	flag.IntVar(&resultLimit, "search.limit", 0, "Maximum search results to collect (0 = default 10)")
	flag.IntVar(&minResults, "search.minResults", 0, "Minimum usable results to proceed (0 = default 2)")
	flag.IntVar(&references, "scrape.references", 0, "How many top results to scrape (0 = default 2)")
	flag.IntVar(&minReferences, "scrape.minReferences", 0, "Surviving scraped documents required to proceed (0 = default 1)")
	flag.StringVar(&userAgent, "ua", envOr("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"), "Outbound User-Agent string")
	flag.DurationVar(&timeout, "timeout", 0, "Per-request timeout for outbound HTTP calls (0 = default 20s)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		StoreURL:         storeURL,
		LLMBaseURL:       llmBaseURL,
		LLMModel:         llmModel,
		LLMAPIKey:        llmKey,
		SearchBaseURL:    searchURL,
		UseBrowser:       useBrowser,
		ResultLimit:      resultLimit,
		MinSearchResults: minResults,
		ReferenceCount:   references,
		MinReferences:    minReferences,
		UserAgent:        userAgent,
		RequestTimeout:   timeout,
		Verbose:          verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Exit code policy: 0 on success including the nothing-to-do case,
	// nonzero on any aborted run.
	if err := app.New(cfg).Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("run aborted")
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
