package app

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration decodes YAML strings like "30s" into a time.Duration.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("parse duration %q: %w", s, perr)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// FileConfig is the YAML configuration schema. Nested sections map naturally
// to the flag namespace. The denylist and selector lists live here so they
// can be versioned independently of the code.
type FileConfig struct {
	Store struct {
		URL string `yaml:"url"`
	} `yaml:"store"`

	LLM struct {
		BaseURL string `yaml:"base"`
		Model   string `yaml:"model"`
		APIKey  string `yaml:"key"`
	} `yaml:"llm"`

	Search struct {
		URL        string   `yaml:"url"`
		Browser    *bool    `yaml:"browser"`
		Limit      int      `yaml:"limit"`
		MinResults int      `yaml:"minResults"`
		Timeout    Duration `yaml:"timeout"`
		Denylist   []string `yaml:"denylist"`
	} `yaml:"search"`

	Scrape struct {
		References    int      `yaml:"references"`
		MinReferences int      `yaml:"minReferences"`
		Timeout       Duration `yaml:"timeout"`
	} `yaml:"scrape"`

	Extract struct {
		StripSelectors     []string `yaml:"stripSelectors"`
		ContainerSelectors []string `yaml:"containerSelectors"`
		MinContainerChars  int      `yaml:"minContainerChars"`
		MinParagraphChars  int      `yaml:"minParagraphChars"`
		MinDocumentChars   int      `yaml:"minDocumentChars"`
	} `yaml:"extract"`

	Synth struct {
		PreviewChars int `yaml:"previewChars"`
		MinBodyChars int `yaml:"minBodyChars"`
		MaxTokens    int `yaml:"maxTokens"`
	} `yaml:"synth"`

	ExcerptChars int    `yaml:"excerptChars"`
	UserAgent    string `yaml:"userAgent"`
	Verbose      bool   `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse config: %w", err)
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields the flags left
// unset, so explicit flags keep precedence over the file.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if cfg.StoreURL == "" && fc.Store.URL != "" {
		cfg.StoreURL = fc.Store.URL
	}
	if cfg.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		cfg.LLMBaseURL = fc.LLM.BaseURL
	}
	if cfg.LLMModel == "" && fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if cfg.LLMAPIKey == "" && fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if cfg.SearchBaseURL == "" && fc.Search.URL != "" {
		cfg.SearchBaseURL = fc.Search.URL
	}
	if fc.Search.Browser != nil {
		cfg.UseBrowser = *fc.Search.Browser
	}
	if cfg.ResultLimit == 0 && fc.Search.Limit > 0 {
		cfg.ResultLimit = fc.Search.Limit
	}
	if cfg.MinSearchResults == 0 && fc.Search.MinResults > 0 {
		cfg.MinSearchResults = fc.Search.MinResults
	}
	if cfg.BrowserTimeout == 0 && fc.Search.Timeout > 0 {
		cfg.BrowserTimeout = time.Duration(fc.Search.Timeout)
	}
	if len(cfg.Denylist) == 0 && len(fc.Search.Denylist) > 0 {
		cfg.Denylist = append([]string{}, fc.Search.Denylist...)
	}
	if cfg.ReferenceCount == 0 && fc.Scrape.References > 0 {
		cfg.ReferenceCount = fc.Scrape.References
	}
	if cfg.MinReferences == 0 && fc.Scrape.MinReferences > 0 {
		cfg.MinReferences = fc.Scrape.MinReferences
	}
	if cfg.RequestTimeout == 0 && fc.Scrape.Timeout > 0 {
		cfg.RequestTimeout = time.Duration(fc.Scrape.Timeout)
	}
	if len(cfg.StripSelectors) == 0 && len(fc.Extract.StripSelectors) > 0 {
		cfg.StripSelectors = append([]string{}, fc.Extract.StripSelectors...)
	}
	if len(cfg.ContainerSelectors) == 0 && len(fc.Extract.ContainerSelectors) > 0 {
		cfg.ContainerSelectors = append([]string{}, fc.Extract.ContainerSelectors...)
	}
	if cfg.MinContainerChars == 0 && fc.Extract.MinContainerChars > 0 {
		cfg.MinContainerChars = fc.Extract.MinContainerChars
	}
	if cfg.MinParagraphChars == 0 && fc.Extract.MinParagraphChars > 0 {
		cfg.MinParagraphChars = fc.Extract.MinParagraphChars
	}
	if cfg.MinDocumentChars == 0 && fc.Extract.MinDocumentChars > 0 {
		cfg.MinDocumentChars = fc.Extract.MinDocumentChars
	}
	if cfg.PreviewChars == 0 && fc.Synth.PreviewChars > 0 {
		cfg.PreviewChars = fc.Synth.PreviewChars
	}
	if cfg.MinBodyChars == 0 && fc.Synth.MinBodyChars > 0 {
		cfg.MinBodyChars = fc.Synth.MinBodyChars
	}
	if cfg.MaxTokens == 0 && fc.Synth.MaxTokens > 0 {
		cfg.MaxTokens = fc.Synth.MaxTokens
	}
	if cfg.ExcerptChars == 0 && fc.ExcerptChars > 0 {
		cfg.ExcerptChars = fc.ExcerptChars
	}
	if cfg.UserAgent == "" && fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}
