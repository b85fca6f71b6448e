package executor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/application/service"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replays outputs in order and repeats the last one forever.
type scriptedLLM struct {
	outputs []string
	prompts []string
	system  []string
	calls   int
}

func (m *scriptedLLM) Generate(ctx context.Context, prompt, systemPrompt string) string {
	return m.GenerateStream(ctx, prompt, systemPrompt, nil)
}

func (m *scriptedLLM) GenerateStream(ctx context.Context, prompt, systemPrompt string, onChunk func(string)) string {
	m.prompts = append(m.prompts, prompt)
	m.system = append(m.system, systemPrompt)

	i := m.calls
	if i >= len(m.outputs) {
		i = len(m.outputs) - 1
	}
	m.calls++

	out := m.outputs[i]
	if onChunk != nil {
		for _, word := range strings.SplitAfter(out, " ") {
			onChunk(word)
		}
	}
	return out
}

type mockTool struct {
	name   entity.ToolName
	result func(entity.Arguments) (string, error)
	calls  int
}

func (m *mockTool) Name() entity.ToolName              { return m.name }
func (m *mockTool) Description() string                { return "mock" }
func (m *mockTool) Parameters() []entity.ParameterSpec { return nil }

func (m *mockTool) Execute(ctx context.Context, args entity.Arguments) (string, error) {
	m.calls++
	return m.result(args)
}

type recordingObserver struct {
	iterations []int
	chunks     []string
	outputs    []string
	actions    []entity.ParsedAction
	errors     []bool
	outcomes   []entity.LoopOutcome
}

func (r *recordingObserver) ShowIteration(_ context.Context, iteration, _ int) {
	r.iterations = append(r.iterations, iteration)
}
func (r *recordingObserver) ShowModelChunk(_ context.Context, chunk string) {
	r.chunks = append(r.chunks, chunk)
}
func (r *recordingObserver) ShowModelOutput(_ context.Context, out string) {
	r.outputs = append(r.outputs, out)
}
func (r *recordingObserver) ShowAction(_ context.Context, action entity.ParsedAction) {
	r.actions = append(r.actions, action)
}
func (r *recordingObserver) ShowObservation(_ context.Context, _ string, isError bool) {
	r.errors = append(r.errors, isError)
}
func (r *recordingObserver) ShowOutcome(_ context.Context, outcome entity.LoopOutcome) {
	r.outcomes = append(r.outcomes, outcome)
}

func weatherTool() *mockTool {
	return &mockTool{
		name: entity.ToolGetWeather,
		result: func(args entity.Arguments) (string, error) {
			city, err := args.GetString("city")
			if err != nil {
				return "", err
			}
			return city + " current weather: Sunny, temperature 20 degrees Celsius", nil
		},
	}
}

func newUseCase(llm output.LLMPort, opts []Option, tools ...output.ToolPort) *UseCase {
	registry := service.MustNewToolRegistry(tools...)
	return New(llm, registry, logger.NewNop(), Config{SystemPrompt: "system"}, opts...)
}

func TestRun_FinishOnFirstIteration(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"Thought: easy.\nAction: finish(answer=\"done\")"}}
	uc := newUseCase(llm, nil)

	outcome := uc.Run(context.Background(), "say done", 8)

	assert.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Equal(t, "done", outcome.Answer)
	assert.Equal(t, 1, outcome.Iterations)
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, "system", llm.system[0])
	assert.Equal(t, "User request: say done", llm.prompts[0])
}

func TestRun_NoActionLineFails(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"Thought: I will just chat."}}
	uc := newUseCase(llm, nil)

	outcome := uc.Run(context.Background(), "hello", 8)

	assert.Equal(t, entity.OutcomeParseFailed, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
	assert.Equal(t, 1, outcome.Iterations)
	assert.Equal(t, 1, llm.calls)
	require.Len(t, outcome.Transcript, 2)
	assert.Equal(t, entity.TurnModelOutput, outcome.Transcript[1].Kind)
}

func TestRun_UnknownToolExhaustsIterations(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"Action: unknown_tool()"}}
	uc := newUseCase(llm, nil, weatherTool())

	outcome := uc.Run(context.Background(), "loop forever", 5)

	assert.Equal(t, entity.OutcomeIterationsExhausted, outcome.Status)
	assert.Equal(t, 5, outcome.Iterations)
	assert.Equal(t, 5, llm.calls)
	assert.Equal(t, 5, outcome.ObservationCount())
	for _, turn := range outcome.Transcript {
		if turn.Kind == entity.TurnObservation {
			assert.Equal(t, "Observation: Error: undefined tool 'unknown_tool'", turn.Content)
		}
	}
}

func TestRun_DefaultCeiling(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{"Action: unknown_tool()"}}
	uc := newUseCase(llm, nil)

	outcome := uc.Run(context.Background(), "loop", 0)

	assert.Equal(t, entity.OutcomeIterationsExhausted, outcome.Status)
	assert.Equal(t, DefaultMaxIterations, outcome.Iterations)
}

func TestRun_WeatherThenFinish(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{
		"Thought: get the weather first.\nAction: get_weather(city=\"Paris\")",
		"Thought: sunny, a park fits.\nAction: finish(answer=\"It is sunny in Paris, visit the Luxembourg Gardens.\")",
	}}
	weather := weatherTool()
	uc := newUseCase(llm, nil, weather)

	outcome := uc.Run(context.Background(), "weather in Paris then suggest an attraction", 8)

	require.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Equal(t, "It is sunny in Paris, visit the Luxembourg Gardens.", outcome.Answer)
	assert.Equal(t, 2, outcome.Iterations)
	assert.Equal(t, 1, weather.calls)

	require.Len(t, outcome.Transcript, 4)
	assert.Equal(t,
		"Observation: Paris current weather: Sunny, temperature 20 degrees Celsius",
		outcome.Transcript[2].Content)

	// The observation is part of the prompt for the second model call.
	require.Len(t, llm.prompts, 2)
	assert.True(t, strings.HasSuffix(llm.prompts[1],
		"\nObservation: Paris current weather: Sunny, temperature 20 degrees Celsius"))
}

func TestRun_ParseErrorIsRecovered(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{
		"Action: get_weather(\"Paris\")",
		"Action: get_weather(city=\"Paris\")",
		"Action: finish(answer=\"ok\")",
	}}
	weather := weatherTool()
	uc := newUseCase(llm, nil, weather)

	outcome := uc.Run(context.Background(), "weather", 8)

	require.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Equal(t, 3, outcome.Iterations)
	assert.Equal(t, 1, weather.calls)
	assert.True(t, strings.HasPrefix(outcome.Transcript[2].Content, "Observation: Error: action parse failed - "))
	assert.Contains(t, outcome.Transcript[2].Content, "positional")
}

func TestRun_ToolFailureIsRecovered(t *testing.T) {
	broken := &mockTool{
		name: entity.ToolGetWeather,
		result: func(entity.Arguments) (string, error) {
			return "", errors.New("wttr.in unreachable")
		},
	}
	llm := &scriptedLLM{outputs: []string{
		"Action: get_weather(city=\"Paris\")",
		"Action: finish(answer=\"could not get weather\")",
	}}
	uc := newUseCase(llm, nil, broken)

	outcome := uc.Run(context.Background(), "weather", 8)

	require.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Contains(t, outcome.Transcript[2].Content, "wttr.in unreachable")
}

func TestRun_FinishFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   string
	}{
		{"trimmed answer", `finish(answer="  done  ")`, "done"},
		{"single quotes", `finish(answer='done')`, "done"},
		{"malformed falls back to raw text", `finish(answer="unterminated)`, `finish(answer="unterminated)`},
		{"positional falls back to raw text", `finish("done")`, `finish("done")`},
		{"missing answer", `finish()`, ""},
		{"number answer", `finish(answer=42)`, "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &scriptedLLM{outputs: []string{"Action: " + tt.action}}
			outcome := newUseCase(llm, nil).Run(context.Background(), "q", 8)

			assert.Equal(t, entity.OutcomeFinished, outcome.Status)
			assert.Equal(t, tt.want, outcome.Answer)
		})
	}
}

func TestRun_ModelFaultIsRecovered(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{
		output.ModelFaultSentinel + " connection reset",
		"Action: finish(answer=\"recovered\")",
	}}
	uc := newUseCase(llm, nil)

	outcome := uc.Run(context.Background(), "q", 8)

	require.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Equal(t, "recovered", outcome.Answer)
	assert.Equal(t, 2, outcome.Iterations)
	assert.Equal(t, entity.TurnObservation, outcome.Transcript[2].Kind)
	assert.Contains(t, outcome.Transcript[2].Content, "language model call failed")
}

func TestRun_FirstActionLineWins(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{
		"Action: finish(answer=\"first\")\nAction: finish(answer=\"second\")",
	}}

	outcome := newUseCase(llm, nil).Run(context.Background(), "q", 8)

	assert.Equal(t, "first", outcome.Answer)
}

func TestRun_ObserverSeesStreamAndEvents(t *testing.T) {
	obs := &recordingObserver{}
	llm := &scriptedLLM{outputs: []string{
		"Action: get_weather(city=\"Paris\")",
		"Action: nope()",
		"Action: finish(answer=\"done\")",
	}}
	uc := newUseCase(llm, []Option{WithObserver(obs)}, weatherTool())

	outcome := uc.Run(context.Background(), "q", 8)

	assert.Equal(t, []int{1, 2, 3}, obs.iterations)
	assert.Equal(t, "Action: get_weather(city=\"Paris\")", strings.Join(obs.chunks[:2], ""))
	assert.Len(t, obs.outputs, 3)
	require.Len(t, obs.actions, 2)
	assert.Equal(t, "get_weather", obs.actions[0].Name)
	assert.Equal(t, []bool{false, true}, obs.errors)
	require.Len(t, obs.outcomes, 1)
	assert.Equal(t, outcome, obs.outcomes[0])
}

func TestRun_TranscriptIsAppendOnly(t *testing.T) {
	llm := &scriptedLLM{outputs: []string{
		"Action: get_weather(city=\"Paris\")",
		"Action: finish(answer=\"done\")",
	}}
	uc := newUseCase(llm, nil, weatherTool())

	outcome := uc.Run(context.Background(), "q", 8)

	// Every prompt extends the previous one.
	require.Len(t, llm.prompts, 2)
	assert.True(t, strings.HasPrefix(llm.prompts[1], llm.prompts[0]+"\n"))

	kinds := make([]entity.TurnKind, 0, len(outcome.Transcript))
	for _, turn := range outcome.Transcript {
		kinds = append(kinds, turn.Kind)
	}
	assert.Equal(t, []entity.TurnKind{
		entity.TurnUserRequest,
		entity.TurnModelOutput,
		entity.TurnObservation,
		entity.TurnModelOutput,
	}, kinds)
}

func TestRun_ToolPanicDoesNotEscape(t *testing.T) {
	crashy := &mockTool{
		name: "crashy",
		result: func(entity.Arguments) (string, error) {
			panic("nil map write")
		},
	}
	llm := &scriptedLLM{outputs: []string{"Action: crashy()", "Action: finish(answer=\"ok\")"}}
	uc := newUseCase(llm, nil, crashy)

	var outcome entity.LoopOutcome
	assert.NotPanics(t, func() {
		outcome = uc.Run(context.Background(), "q", 8)
	})
	assert.Equal(t, entity.OutcomeFinished, outcome.Status)
	assert.Contains(t, outcome.Transcript[2].Content, "nil map write")
}

func TestState(t *testing.T) {
	assert.Equal(t, "AWAITING_MODEL", StateAwaitingModel.String())
	assert.Equal(t, "EXHAUSTED", StateExhausted.String())
	assert.False(t, StateDispatching.Terminal())
	assert.True(t, StateFinished.Terminal())
	assert.True(t, StateFailedParse.Terminal())
}
