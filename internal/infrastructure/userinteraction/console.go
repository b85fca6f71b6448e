package userinteraction

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.SessionObserver = (*ConsoleObserver)(nil)

// ConsoleObserver prints session progress to a terminal.
type ConsoleObserver struct {
	out       io.Writer
	stream    bool
	streaming bool
}

type Options struct {
	// Stream echoes model text as it arrives instead of once per turn.
	Stream bool
}

func NewConsoleObserver(out io.Writer, opts Options) *ConsoleObserver {
	if out == nil {
		out = color.Output
	}
	return &ConsoleObserver{out: out, stream: opts.Stream}
}

func (c *ConsoleObserver) ShowIteration(ctx context.Context, iteration, maxIterations int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Fprintf(c.out, "\n━━━ Iteration %d/%d ━━━\n", iteration, maxIterations)
}

func (c *ConsoleObserver) ShowModelChunk(ctx context.Context, chunk string) {
	if !c.stream || chunk == "" {
		return
	}
	if !c.streaming {
		blue := color.New(color.FgBlue)
		blue.Fprint(c.out, "💭 Model:\n")
		c.streaming = true
	}
	dim := color.New(color.Faint)
	dim.Fprint(c.out, chunk)
}

func (c *ConsoleObserver) ShowModelOutput(ctx context.Context, text string) {
	if c.streaming {
		c.streaming = false
		fmt.Fprintln(c.out)
		return
	}
	if text == "" {
		return
	}

	blue := color.New(color.FgBlue)
	blue.Fprint(c.out, "💭 Model:\n")

	dim := color.New(color.Faint)
	dim.Fprintln(c.out, truncate(text, 1000))
}

func (c *ConsoleObserver) ShowAction(ctx context.Context, action entity.ParsedAction) {
	icon, name := toolDisplay(action.Name)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Fprintf(c.out, "%s %s\n", icon, name)

	if summary := formatArguments(action.Arguments); summary != "" {
		dim := color.New(color.Faint)
		dim.Fprintf(c.out, "   %s\n", summary)
	}
}

func (c *ConsoleObserver) ShowObservation(ctx context.Context, observation string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Fprint(c.out, "❌ ")

		dim := color.New(color.Faint)
		dim.Fprintln(c.out, truncate(observation, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Fprintf(c.out, "✓ %s\n", truncate(observation, 300))
}

func (c *ConsoleObserver) ShowOutcome(ctx context.Context, outcome entity.LoopOutcome) {
	fmt.Fprintln(c.out, strings.Repeat("=", 40))

	switch outcome.Status {
	case entity.OutcomeFinished:
		green := color.New(color.FgGreen, color.Bold)
		green.Fprintf(c.out, "✅ Finished after %d iteration(s)\n", outcome.Iterations)
		fmt.Fprintln(c.out, outcome.Answer)
	case entity.OutcomeParseFailed:
		red := color.New(color.FgRed, color.Bold)
		red.Fprintf(c.out, "⛔ Stopped: %s\n", outcome.Reason)
	default:
		yellow := color.New(color.FgYellow, color.Bold)
		yellow.Fprintf(c.out, "⌛ No answer after %d iteration(s)\n", outcome.Iterations)
	}
}

func toolDisplay(name string) (string, string) {
	displays := map[string][2]string{
		entity.ToolGetWeather.String():    {"🌤️", "Weather"},
		entity.ToolGetAttraction.String(): {"🗺️", "Attractions"},
	}

	if display, ok := displays[name]; ok {
		return display[0], display[1]
	}
	return "🔧", name
}

func formatArguments(args entity.Arguments) string {
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, truncate(args[k].String(), 60)))
	}
	return strings.Join(parts, " | ")
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
