package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/search/tavily"
	"travel-agent/internal/infrastructure/weather/wttr"
)

var (
	_ output.ToolPort = (*WeatherTool)(nil)
	_ output.ToolPort = (*AttractionTool)(nil)
)

type WeatherSource interface {
	Current(ctx context.Context, city string) (wttr.Conditions, error)
}

type AttractionSearcher interface {
	Configured() bool
	Search(ctx context.Context, query string) (tavily.SearchResponse, error)
}

// WeatherTool reports the current conditions for a city. Lookup failures are
// returned as readable observations rather than errors so the model can
// react to them.
type WeatherTool struct {
	source WeatherSource
	logger output.LoggerPort
}

func NewWeatherTool(source WeatherSource, logger output.LoggerPort) *WeatherTool {
	return &WeatherTool{source: source, logger: logger}
}

func (t *WeatherTool) Name() entity.ToolName { return entity.ToolGetWeather }
func (t *WeatherTool) Description() string {
	return "Query the real-time weather for a city"
}
func (t *WeatherTool) Parameters() []entity.ParameterSpec {
	return []entity.ParameterSpec{
		{Name: "city", Type: entity.LiteralString, Description: "City name", Required: true},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args entity.Arguments) (string, error) {
	if err := checkArguments(args, t.Parameters()); err != nil {
		return "", err
	}
	city, err := args.GetString("city")
	if err != nil {
		return "", err
	}

	cond, err := t.source.Current(ctx, city)
	switch {
	case err == nil:
		return cond.String(), nil
	case errors.Is(err, wttr.ErrDecode):
		t.logger.Warn("Weather data incomplete", "city", city, "error", err)
		return fmt.Sprintf("Error: Failed to parse weather data, city name may be invalid - %v", err), nil
	default:
		t.logger.Warn("Weather request failed", "city", city, "error", err)
		return fmt.Sprintf("Error: Network problem encountered when querying weather - %v", err), nil
	}
}

// AttractionTool searches for sights that fit the given weather.
type AttractionTool struct {
	search AttractionSearcher
	logger output.LoggerPort
}

func NewAttractionTool(search AttractionSearcher, logger output.LoggerPort) *AttractionTool {
	return &AttractionTool{search: search, logger: logger}
}

func (t *AttractionTool) Name() entity.ToolName { return entity.ToolGetAttraction }
func (t *AttractionTool) Description() string {
	return "Recommend tourist attractions in a city suited to the weather"
}
func (t *AttractionTool) Parameters() []entity.ParameterSpec {
	return []entity.ParameterSpec{
		{Name: "city", Type: entity.LiteralString, Description: "City name", Required: true},
		{Name: "weather", Type: entity.LiteralString, Description: "Weather description", Required: true},
	}
}

func (t *AttractionTool) Execute(ctx context.Context, args entity.Arguments) (string, error) {
	if err := checkArguments(args, t.Parameters()); err != nil {
		return "", err
	}
	city, err := args.GetString("city")
	if err != nil {
		return "", err
	}
	weather, err := args.GetString("weather")
	if err != nil {
		return "", err
	}

	if !t.search.Configured() {
		return "Error: TAVILY_API_KEY environment variable not configured.", nil
	}

	query := fmt.Sprintf("%s best tourist attractions suitable for %s weather with reasons", city, weather)
	resp, err := t.search.Search(ctx, query)
	if err != nil {
		t.logger.Warn("Attraction search failed", "city", city, "error", err)
		return fmt.Sprintf("Error: Problem occurred when executing Tavily search - %v", err), nil
	}

	if resp.Answer != "" {
		return resp.Answer, nil
	}
	if len(resp.Results) == 0 {
		return "Sorry, no relevant tourist attraction recommendations found.", nil
	}

	lines := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		lines = append(lines, fmt.Sprintf("- %s: %s", r.Title, r.Content))
	}
	return "Based on search, found the following information for you:\n" + strings.Join(lines, "\n"), nil
}

// checkArguments rejects unknown keywords and reports missing required ones.
func checkArguments(args entity.Arguments, params []entity.ParameterSpec) error {
	known := make(map[string]bool, len(params))
	for _, p := range params {
		known[p.Name] = true
	}

	var unexpected []string
	for k := range args {
		if !known[k] {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return fmt.Errorf("unexpected argument '%s'", unexpected[0])
	}

	for _, p := range params {
		if _, ok := args[p.Name]; p.Required && !ok {
			return fmt.Errorf("missing required argument '%s'", p.Name)
		}
	}
	return nil
}
