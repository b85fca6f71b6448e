package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
)

const (
	maxObservationLen = 20000

	// ErrorPrefix marks an observation that reports a failure rather than a
	// tool result.
	ErrorPrefix = "Error: "
)

type Dispatcher struct {
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func NewDispatcher(tools output.ToolRegistry, logger output.LoggerPort) *Dispatcher {
	return &Dispatcher{
		tools:  tools,
		logger: logger.Named("dispatcher"),
	}
}

// Dispatch runs the named tool and returns the observation text. It never
// fails: an unknown name, a tool error or a tool panic all come back as an
// observation starting with ErrorPrefix.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args entity.Arguments) (observation string) {
	tool, ok := d.tools.Get(entity.ToolName(name))
	if !ok {
		d.logger.Warn("Unknown tool called", "name", name)
		return UndefinedToolObservation(name)
	}

	log := d.logger.WithField("tool", name)
	log.Info("Executing tool", "args", args.Values())
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error("Tool panicked", "panic", fmt.Sprint(r), "durationMs", time.Since(start).Milliseconds())
			observation = ToolFailureObservation(fmt.Errorf("panic: %v", r))
		}
	}()

	result, err := tool.Execute(ctx, args)
	if err != nil {
		log.Error("Tool execution failed", "error", err, "durationMs", time.Since(start).Milliseconds())
		return ToolFailureObservation(err)
	}

	result = truncateObservation(result)

	log.Debug("Tool completed", "resultLen", len(result), "durationMs", time.Since(start).Milliseconds())
	return result
}

// truncateObservation caps result at maxObservationLen bytes without
// splitting a UTF-8 sequence.
func truncateObservation(result string) string {
	if len(result) <= maxObservationLen {
		return result
	}
	n := maxObservationLen
	for n > 0 && !utf8.RuneStart(result[n]) {
		n--
	}
	return result[:n] + "\n... (truncated)"
}

func UndefinedToolObservation(name string) string {
	return fmt.Sprintf("%sundefined tool '%s'", ErrorPrefix, name)
}

func ToolFailureObservation(err error) string {
	return fmt.Sprintf("%stool execution failed - %v", ErrorPrefix, err)
}

func ParseFailureObservation(err error) string {
	return fmt.Sprintf("%saction parse failed - %v", ErrorPrefix, err)
}
