package service

import (
	"context"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
)

type fakeTool struct {
	name   entity.ToolName
	result string
	err    error
	panics bool

	calls []entity.Arguments
}

func (f *fakeTool) Name() entity.ToolName { return f.name }
func (f *fakeTool) Description() string   { return "fake " + string(f.name) }
func (f *fakeTool) Parameters() []entity.ParameterSpec {
	return []entity.ParameterSpec{{Name: "city", Type: entity.LiteralString, Required: true}}
}

func (f *fakeTool) Execute(ctx context.Context, args entity.Arguments) (string, error) {
	f.calls = append(f.calls, args)
	if f.panics {
		panic("boom")
	}
	return f.result, f.err
}

func toPorts(tools []*fakeTool) []output.ToolPort {
	out := make([]output.ToolPort, len(tools))
	for i, t := range tools {
		out[i] = t
	}
	return out
}
