package tool

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/infrastructure/search/tavily"
	"travel-agent/internal/infrastructure/weather/wttr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeather struct {
	cond wttr.Conditions
	err  error
	city string
}

func (s *stubWeather) Current(_ context.Context, city string) (wttr.Conditions, error) {
	s.city = city
	return s.cond, s.err
}

type stubSearch struct {
	configured bool
	resp       tavily.SearchResponse
	err        error
	query      string
}

func (s *stubSearch) Configured() bool { return s.configured }
func (s *stubSearch) Search(_ context.Context, query string) (tavily.SearchResponse, error) {
	s.query = query
	return s.resp, s.err
}

func cityArgs(city string) entity.Arguments {
	return entity.Arguments{"city": entity.StringLiteral(city)}
}

func TestWeatherTool(t *testing.T) {
	tests := []struct {
		name string
		stub *stubWeather
		want string
	}{
		{
			name: "ok",
			stub: &stubWeather{cond: wttr.Conditions{City: "Paris", Description: "Sunny", TempC: "18"}},
			want: "Paris current weather: Sunny, temperature 18 degrees Celsius",
		},
		{
			name: "network",
			stub: &stubWeather{err: fmt.Errorf("%w: timeout", wttr.ErrRequest)},
			want: "Error: Network problem encountered when querying weather - weather request failed: timeout",
		},
		{
			name: "decode",
			stub: &stubWeather{err: fmt.Errorf("%w: missing temp_C", wttr.ErrDecode)},
			want: "Error: Failed to parse weather data, city name may be invalid - weather data malformed: missing temp_C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewWeatherTool(tt.stub, logger.NewNop())
			got, err := tool.Execute(t.Context(), cityArgs("Paris"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Paris", tt.stub.city)
		})
	}
}

func TestWeatherTool_BadArguments(t *testing.T) {
	tool := NewWeatherTool(&stubWeather{}, logger.NewNop())

	_, err := tool.Execute(t.Context(), entity.Arguments{})
	assert.EqualError(t, err, "missing required argument 'city'")

	_, err = tool.Execute(t.Context(), entity.Arguments{"city": entity.StringLiteral("Paris"), "unit": entity.StringLiteral("F")})
	assert.EqualError(t, err, "unexpected argument 'unit'")

	_, err = tool.Execute(t.Context(), entity.Arguments{"city": entity.NumberLiteral(3)})
	assert.Error(t, err)
}

func TestAttractionTool(t *testing.T) {
	args := entity.Arguments{"city": entity.StringLiteral("Paris"), "weather": entity.StringLiteral("Sunny")}

	t.Run("answer preferred", func(t *testing.T) {
		stub := &stubSearch{configured: true, resp: tavily.SearchResponse{
			Answer:  "Visit the Louvre.",
			Results: []tavily.Result{{Title: "ignored", Content: "ignored"}},
		}}
		got, err := NewAttractionTool(stub, logger.NewNop()).Execute(t.Context(), args)
		require.NoError(t, err)
		assert.Equal(t, "Visit the Louvre.", got)
		assert.Equal(t, "Paris best tourist attractions suitable for Sunny weather with reasons", stub.query)
	})

	t.Run("results list", func(t *testing.T) {
		stub := &stubSearch{configured: true, resp: tavily.SearchResponse{Results: []tavily.Result{
			{Title: "Louvre", Content: "Museum"},
			{Title: "Seine", Content: "River walk"},
		}}}
		got, err := NewAttractionTool(stub, logger.NewNop()).Execute(t.Context(), args)
		require.NoError(t, err)
		assert.Equal(t, "Based on search, found the following information for you:\n- Louvre: Museum\n- Seine: River walk", got)
	})

	t.Run("no results", func(t *testing.T) {
		got, err := NewAttractionTool(&stubSearch{configured: true}, logger.NewNop()).Execute(t.Context(), args)
		require.NoError(t, err)
		assert.Equal(t, "Sorry, no relevant tourist attraction recommendations found.", got)
	})

	t.Run("missing key", func(t *testing.T) {
		stub := &stubSearch{}
		got, err := NewAttractionTool(stub, logger.NewNop()).Execute(t.Context(), args)
		require.NoError(t, err)
		assert.Equal(t, "Error: TAVILY_API_KEY environment variable not configured.", got)
		assert.Empty(t, stub.query)
	})

	t.Run("search error", func(t *testing.T) {
		stub := &stubSearch{configured: true, err: errors.New("search returned 500: down")}
		got, err := NewAttractionTool(stub, logger.NewNop()).Execute(t.Context(), args)
		require.NoError(t, err)
		assert.Equal(t, "Error: Problem occurred when executing Tavily search - search returned 500: down", got)
	})

	t.Run("missing weather", func(t *testing.T) {
		_, err := NewAttractionTool(&stubSearch{configured: true}, logger.NewNop()).Execute(t.Context(), cityArgs("Paris"))
		assert.EqualError(t, err, "missing required argument 'weather'")
	})
}
