package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral_Rendering(t *testing.T) {
	tests := []struct {
		name      string
		lit       Literal
		str       string
		canonical string
	}{
		{"string", StringLiteral(`say "hi"`), `say "hi"`, `"say \"hi\""`},
		{"newline", StringLiteral("a\nb"), "a\nb", `"a\nb"`},
		{"int", NumberLiteral(42), "42", "42"},
		{"negative", NumberLiteral(-7), "-7", "-7"},
		{"float", NumberLiteral(2.5), "2.5", "2.5"},
		{"huge", NumberLiteral(1e300), "1e+300", "1e+300"},
		{"true", BoolLiteral(true), "true", "True"},
		{"false", BoolLiteral(false), "false", "False"},
		{"null", NullLiteral(), "null", "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.lit.String())
			assert.Equal(t, tt.canonical, tt.lit.Canonical())
		})
	}
}

func TestLiteral_Equal(t *testing.T) {
	assert.True(t, NumberLiteral(3).Equal(NumberLiteral(3.0)))
	assert.True(t, NullLiteral().Equal(NullLiteral()))
	assert.False(t, StringLiteral("3").Equal(NumberLiteral(3)))
	assert.False(t, BoolLiteral(true).Equal(BoolLiteral(false)))
}

func TestLiteral_IsInt(t *testing.T) {
	assert.True(t, NumberLiteral(10).IsInt())
	assert.False(t, NumberLiteral(10.5).IsInt())
	assert.False(t, NumberLiteral(1e20).IsInt())
	assert.False(t, StringLiteral("10").IsInt())
}

func TestArguments_Getters(t *testing.T) {
	args := Arguments{
		"city":   StringLiteral("Paris"),
		"days":   NumberLiteral(3),
		"indoor": BoolLiteral(true),
		"note":   NullLiteral(),
	}

	city, err := args.GetString("city")
	require.NoError(t, err)
	assert.Equal(t, "Paris", city)

	days, err := args.GetNumber("days")
	require.NoError(t, err)
	assert.Equal(t, 3.0, days)

	indoor, err := args.GetBool("indoor")
	require.NoError(t, err)
	assert.True(t, indoor)

	_, err = args.GetString("days")
	assert.EqualError(t, err, "argument 'days' must be a string, got number")

	_, err = args.GetNumber("missing")
	assert.EqualError(t, err, "missing required argument 'missing'")

	_, err = args.GetBool("note")
	assert.EqualError(t, err, "argument 'note' must be a boolean, got null")

	assert.Equal(t, map[string]any{"city": "Paris", "days": 3.0, "indoor": true, "note": nil}, args.Values())
}

func TestLoopOutcome(t *testing.T) {
	o := Finished("done")
	o.Transcript = []Turn{
		UserRequestTurn("hi"),
		ModelOutputTurn("Action: x()"),
		ObservationTurn("Error: undefined tool 'x'"),
		ModelOutputTurn("Action: finish(answer=\"done\")"),
	}

	assert.True(t, o.Complete())
	assert.Equal(t, 1, o.ObservationCount())
	assert.Equal(t, "User request: hi", o.Transcript[0].Content)
	assert.Equal(t, "Observation: Error: undefined tool 'x'", o.Transcript[2].Content)

	assert.False(t, ParseFailed("no action").Complete())
	assert.False(t, IterationsExhausted().Complete())
}
