package service

import (
	"errors"
	"fmt"
	"sort"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
)

var _ output.ToolRegistry = (*ToolRegistry)(nil)

var (
	ErrDuplicateTool = errors.New("tool already registered")
	ErrReservedTool  = errors.New("tool name is reserved")
	ErrInvalidTool   = errors.New("invalid tool")
)

// ToolRegistry is fixed at construction: there is no way to add or remove a
// tool afterwards, so it can be shared between sessions without locking.
type ToolRegistry struct {
	tools map[entity.ToolName]output.ToolPort
	names []entity.ToolName
}

func NewToolRegistry(tools ...output.ToolPort) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools: make(map[entity.ToolName]output.ToolPort, len(tools)),
	}

	for _, tool := range tools {
		if tool == nil {
			return nil, fmt.Errorf("%w: nil tool", ErrInvalidTool)
		}
		name := tool.Name()
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: empty name", ErrInvalidTool)
		case name == entity.ToolFinish:
			return nil, fmt.Errorf("%w: '%s'", ErrReservedTool, name)
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("%w: '%s'", ErrDuplicateTool, name)
		}
		r.tools[name] = tool
		r.names = append(r.names, name)
	}

	sort.Slice(r.names, func(i, j int) bool { return r.names[i] < r.names[j] })
	return r, nil
}

func MustNewToolRegistry(tools ...output.ToolPort) *ToolRegistry {
	r, err := NewToolRegistry(tools...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *ToolRegistry) Get(name entity.ToolName) (output.ToolPort, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

func (r *ToolRegistry) Has(name entity.ToolName) bool {
	_, ok := r.tools[name]
	return ok
}

func (r *ToolRegistry) Names() []entity.ToolName {
	out := make([]entity.ToolName, len(r.names))
	copy(out, r.names)
	return out
}

func (r *ToolRegistry) All() []output.ToolPort {
	result := make([]output.ToolPort, 0, len(r.names))
	for _, name := range r.names {
		result = append(result, r.tools[name])
	}
	return result
}

func (r *ToolRegistry) Definitions() []entity.ToolDefinition {
	result := make([]entity.ToolDefinition, 0, len(r.names))
	for _, name := range r.names {
		tool := r.tools[name]
		result = append(result, entity.ToolDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	return result
}
