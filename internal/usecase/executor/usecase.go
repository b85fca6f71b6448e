package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel-agent/internal/application/port/input"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/application/service"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/usecase/parser"

	"github.com/google/uuid"
)

var _ input.SessionRunner = (*UseCase)(nil)

const (
	DefaultMaxIterations = 8

	modelFaultObservation = service.ErrorPrefix + "language model call failed, please try again"
)

type Config struct {
	SystemPrompt  string
	MaxIterations int
}

type UseCase struct {
	llm           output.LLMPort
	dispatcher    *service.Dispatcher
	logger        output.LoggerPort
	observer      output.SessionObserver
	systemPrompt  string
	maxIterations int
}

type Option func(*UseCase)

// WithObserver attaches a progress observer. Model output is streamed to it
// chunk by chunk.
func WithObserver(observer output.SessionObserver) Option {
	return func(uc *UseCase) {
		if observer != nil {
			uc.observer = observer
		}
	}
}

func New(
	llm output.LLMPort,
	tools output.ToolRegistry,
	logger output.LoggerPort,
	cfg Config,
	opts ...Option,
) *UseCase {
	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	uc := &UseCase{
		llm:           llm,
		dispatcher:    service.NewDispatcher(tools, logger),
		logger:        logger.Named("executor"),
		observer:      nopObserver{},
		systemPrompt:  cfg.SystemPrompt,
		maxIterations: maxIterations,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run drives one session. It always returns exactly one outcome and never
// panics; an unexpected panic is reported as a parse failure.
func (uc *UseCase) Run(ctx context.Context, request string, maxIterations int) (outcome entity.LoopOutcome) {
	if maxIterations <= 0 {
		maxIterations = uc.maxIterations
	}

	s := &session{
		uc:   uc,
		ctx:  ctx,
		log:  uc.logger.WithField("session", uuid.NewString()),
		conv: service.NewConversation(request),
		max:  maxIterations,
	}

	start := time.Now()
	s.log.Info("Session started", "request", request, "maxIterations", maxIterations)

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Session panicked", "panic", fmt.Sprint(r), "state", s.state.String())
			outcome = entity.ParseFailed(fmt.Sprintf("internal error: %v", r))
		}
		outcome.Iterations = s.iteration
		outcome.Transcript = s.conv.Turns()

		s.log.Info("Session ended",
			"status", outcome.Status,
			"iterations", outcome.Iterations,
			"durationMs", time.Since(start).Milliseconds())
		uc.observer.ShowOutcome(ctx, outcome)
	}()

	return s.run()
}

type session struct {
	uc   *UseCase
	ctx  context.Context
	log  output.LoggerPort
	conv *service.Conversation

	state      State
	iteration  int
	max        int
	actionLine string
	action     entity.ParsedAction
	outcome    entity.LoopOutcome
}

func (s *session) run() entity.LoopOutcome {
	s.state = StateAwaitingModel
	for !s.state.Terminal() {
		next := s.step()
		s.log.Debug("State transition", "from", s.state.String(), "to", next.String(), "iteration", s.iteration)
		s.state = next
	}
	return s.outcome
}

func (s *session) step() State {
	switch s.state {
	case StateAwaitingModel:
		return s.awaitModel()
	case StateHaveAction:
		return s.interpretAction()
	case StateDispatching:
		return s.dispatch()
	default:
		panic(fmt.Sprintf("step called in terminal state %s", s.state))
	}
}

func (s *session) awaitModel() State {
	if s.iteration >= s.max {
		s.log.Warn("Iteration ceiling reached", "maxIterations", s.max)
		s.outcome = entity.IterationsExhausted()
		return StateExhausted
	}
	s.iteration++
	s.uc.observer.ShowIteration(s.ctx, s.iteration, s.max)
	s.log.Debug("Starting iteration", "iteration", s.iteration)

	onChunk := func(chunk string) {
		s.uc.observer.ShowModelChunk(s.ctx, chunk)
	}
	text := strings.TrimSpace(s.uc.llm.GenerateStream(s.ctx, s.conv.Prompt(), s.uc.systemPrompt, onChunk))

	s.conv.AppendModelOutput(text)
	s.uc.observer.ShowModelOutput(s.ctx, text)

	if strings.HasPrefix(text, output.ModelFaultSentinel) {
		s.log.Warn("Model call failed", "iteration", s.iteration)
		s.observe(modelFaultObservation)
		return StateAwaitingModel
	}

	line, err := parser.ExtractActionLine(text)
	if err != nil {
		s.log.Error("No action in model output", "iteration", s.iteration, "outputLen", len(text))
		s.outcome = entity.ParseFailed(err.Error())
		return StateFailedParse
	}

	s.actionLine = line
	return StateHaveAction
}

func (s *session) interpretAction() State {
	if name, _ := parser.LeadingIdentifier(s.actionLine); name == entity.ToolFinish.String() {
		answer := finishAnswer(s.actionLine)
		s.log.Info("Finish action received", "iteration", s.iteration, "answerLen", len(answer))
		s.outcome = entity.Finished(answer)
		return StateFinished
	}

	action, err := parser.Parse(s.actionLine)
	if err != nil {
		s.log.Warn("Action parse failed", "action", s.actionLine, "error", err)
		s.observe(service.ParseFailureObservation(err))
		return StateAwaitingModel
	}

	s.action = action
	s.uc.observer.ShowAction(s.ctx, action)
	return StateDispatching
}

func (s *session) dispatch() State {
	observation := s.uc.dispatcher.Dispatch(s.ctx, s.action.Name, s.action.Arguments)
	s.observe(observation)
	return StateAwaitingModel
}

func (s *session) observe(observation string) {
	s.conv.AppendObservation(observation)
	s.uc.observer.ShowObservation(s.ctx, observation, strings.HasPrefix(observation, service.ErrorPrefix))
}

// finishAnswer extracts the answer argument of a finish call. A finish call
// that does not parse yields the raw action text so the session still ends
// with something to show.
func finishAnswer(line string) string {
	action, err := parser.Parse(line)
	if err != nil {
		return line
	}
	answer, ok := action.Arguments["answer"]
	if !ok {
		return ""
	}
	return strings.TrimSpace(answer.String())
}

type nopObserver struct{}

func (nopObserver) ShowIteration(context.Context, int, int)         {}
func (nopObserver) ShowModelChunk(context.Context, string)          {}
func (nopObserver) ShowModelOutput(context.Context, string)         {}
func (nopObserver) ShowAction(context.Context, entity.ParsedAction) {}
func (nopObserver) ShowObservation(context.Context, string, bool)   {}
func (nopObserver) ShowOutcome(context.Context, entity.LoopOutcome) {}
