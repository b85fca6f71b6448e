// Package tavily is a minimal client for the Tavily search API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel-agent/internal/application/port/output"
)

const (
	DefaultBaseURL = "https://api.tavily.com"
	DefaultTimeout = 30 * time.Second
)

// ErrMissingAPIKey is returned before any request is made.
var ErrMissingAPIKey = errors.New("tavily api key not configured")

type SearchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results,omitempty"`
}

type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type SearchResponse struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer"`
	Results []Result `json:"results"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  output.LoggerPort
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  output.LoggerPort
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search posts a basic-depth query with answer generation enabled. Result
// content is reduced to plain text.
func (c *Client) Search(ctx context.Context, query string) (SearchResponse, error) {
	if !c.Configured() {
		return SearchResponse{}, ErrMissingAPIKey
	}

	payload, err := json.Marshal(SearchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
	})
	if err != nil {
		return SearchResponse{}, fmt.Errorf("encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return SearchResponse{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("tavily response", "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return SearchResponse{}, fmt.Errorf("search returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return SearchResponse{}, fmt.Errorf("decode search response: %w", err)
	}

	for i := range out.Results {
		out.Results[i].Title = PlainText(out.Results[i].Title)
		out.Results[i].Content = PlainText(out.Results[i].Content)
	}
	return out, nil
}
