package input

import (
	"context"

	"travel-agent/internal/domain/entity"
)

type SessionRunner interface {
	// Run drives one session to its terminal outcome. maxIterations <= 0
	// selects the runner's default ceiling.
	Run(ctx context.Context, request string, maxIterations int) entity.LoopOutcome
}
