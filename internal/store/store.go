package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Article mirrors the content store's wire representation. The store assigns
// IDs and timestamps; the pipeline reads originals and creates enhanced
// versions but never owns storage.
type Article struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	URL               string     `json:"url,omitempty"`
	Author            string     `json:"author,omitempty"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	IsUpdated         bool       `json:"is_updated"`
	OriginalArticleID *int       `json:"original_article_id,omitempty"`
	References        []string   `json:"references,omitempty"`
	Excerpt           string     `json:"excerpt,omitempty"`
}

// Draft is the payload for creating a new article. Field names follow the
// store's validation contract.
type Draft struct {
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	URL               string     `json:"url,omitempty"`
	Author            string     `json:"author,omitempty"`
	PublishedAt       *time.Time `json:"published_at,omitempty"`
	IsUpdated         bool       `json:"is_updated"`
	OriginalArticleID *int       `json:"original_article_id,omitempty"`
	References        []string   `json:"references"`
	Excerpt           string     `json:"excerpt,omitempty"`
}

// ErrNoEligible is returned by Latest when the store has no original article
// without an enhanced counterpart. Callers treat this as a clean
// "nothing to do" outcome, not a failure.
var ErrNoEligible = errors.New("no eligible article")

// ValidationError carries the store's 422 response with field-level details.
type ValidationError struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, field+": "+strings.Join(msgs, "; "))
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

// Client talks to the content store's HTTP API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// envelope matches the store's {"data": ...} response wrapping.
type envelope struct {
	Data    *Article `json:"data"`
	Message string   `json:"message"`
}

// Latest fetches the most recently created original article that has no
// enhanced counterpart. Returns ErrNoEligible on 404.
func (c *Client) Latest(ctx context.Context) (*Article, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/articles/latest", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest article: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoEligible
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetch latest article: status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode latest article: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("latest article response missing data")
	}
	return env.Data, nil
}

// Create submits a new article. A 422 response is decoded into a
// *ValidationError so callers can surface the store's field details.
func (c *Client) Create(ctx context.Context, d Draft) (*Article, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("encode draft: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/articles", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		var verr ValidationError
		if err := json.NewDecoder(resp.Body).Decode(&verr); err != nil {
			return nil, fmt.Errorf("create article: status 422")
		}
		return nil, &verr
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("create article: status %d", resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode created article: %w", err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("create article response missing data")
	}
	return env.Data, nil
}

// Get retrieves one article by ID. Part of the store's management surface;
// the pipeline itself only needs Latest and Create.
func (c *Client) Get(ctx context.Context, id int) (*Article, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/articles/%d", id), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch article %d: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("article %d not found", id)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch article %d: status %d", id, resp.StatusCode)
	}
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode article %d: %w", id, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("article %d response missing data", id)
	}
	return env.Data, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body *bytes.Reader) (*http.Request, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, errors.New("missing store base url")
	}
	u := strings.TrimRight(c.BaseURL, "/") + path
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, u, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u, nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	return req, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}
