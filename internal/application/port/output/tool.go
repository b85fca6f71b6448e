package output

import (
	"context"

	"travel-agent/internal/domain/entity"
)

type ToolPort interface {
	Name() entity.ToolName
	Description() string
	Parameters() []entity.ParameterSpec
	Execute(ctx context.Context, args entity.Arguments) (string, error)
}

type ToolRegistry interface {
	Get(name entity.ToolName) (ToolPort, bool)
	Has(name entity.ToolName) bool
	Names() []entity.ToolName
	All() []ToolPort
	Definitions() []entity.ToolDefinition
}
