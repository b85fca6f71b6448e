// Package wttr reads current conditions from the wttr.in JSON API.
package wttr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-agent/internal/application/port/output"

	"github.com/ysmood/gson"
)

const (
	DefaultBaseURL = "https://wttr.in"
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrRequest covers transport failures and non-2xx responses.
	ErrRequest = errors.New("weather request failed")
	// ErrDecode means the body was not the expected j1 document.
	ErrDecode = errors.New("weather data malformed")
)

type Conditions struct {
	City        string
	Description string
	TempC       string
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  output.LoggerPort
}

type Config struct {
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
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  cfg.Logger,
	}
}

func (c *Client) Current(ctx context.Context, city string) (Conditions, error) {
	endpoint := fmt.Sprintf("%s/%s?format=j1", c.baseURL, url.PathEscape(city))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("wttr response", "city", city, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Conditions{}, fmt.Errorf("%w: %d %s for url: %s", ErrRequest, resp.StatusCode, http.StatusText(resp.StatusCode), endpoint)
	}

	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Conditions{}, fmt.Errorf("%w: %v", ErrRequest, err)
	}

	return parseConditions(city, gson.New(body))
}

func parseConditions(city string, doc gson.JSON) (Conditions, error) {
	current, ok := doc.Gets("current_condition", 0)
	if !ok {
		return Conditions{}, fmt.Errorf("%w: missing current_condition", ErrDecode)
	}

	desc, ok := current.Gets("weatherDesc", 0, "value")
	if !ok {
		return Conditions{}, fmt.Errorf("%w: missing weatherDesc", ErrDecode)
	}

	temp, ok := current.Gets("temp_C")
	if !ok {
		return Conditions{}, fmt.Errorf("%w: missing temp_C", ErrDecode)
	}

	return Conditions{
		City:        city,
		Description: desc.Str(),
		TempC:       fmt.Sprint(temp.Val()),
	}, nil
}

func (c Conditions) String() string {
	return fmt.Sprintf("%s current weather: %s, temperature %s degrees Celsius", c.City, c.Description, c.TempC)
}
