package output

import (
	"context"

	"travel-agent/internal/domain/entity"
)

// SessionObserver receives progress events from a running session. Calls are
// made synchronously from the session loop, in order.
type SessionObserver interface {
	ShowIteration(ctx context.Context, iteration, maxIterations int)
	ShowModelChunk(ctx context.Context, chunk string)
	ShowModelOutput(ctx context.Context, output string)
	ShowAction(ctx context.Context, action entity.ParsedAction)
	ShowObservation(ctx context.Context, observation string, isError bool)
	ShowOutcome(ctx context.Context, outcome entity.LoopOutcome)
}
