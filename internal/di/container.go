package di

import (
	"fmt"
	"strings"
	"time"

	"travel-agent/internal/adapter/tool"
	"travel-agent/internal/application/port/input"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/application/service"
	"travel-agent/internal/infrastructure/llm/langchain"
	"travel-agent/internal/infrastructure/llm/openaicompat"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/infrastructure/prompts"
	"travel-agent/internal/infrastructure/search/tavily"
	"travel-agent/internal/infrastructure/weather/wttr"
	"travel-agent/internal/usecase/executor"
)

const (
	BackendOpenAI    = "openai"
	BackendLangchain = "langchain"
)

type Container struct {
	LLM           output.LLMPort
	Logger        output.LoggerPort
	Tools         output.ToolRegistry
	SessionRunner input.SessionRunner
	SystemPrompt  string
}

type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMBackend    string
	Temperature   float64

	TavilyAPIKey  string
	TavilyBaseURL string
	WttrBaseURL   string
	ToolTimeout   time.Duration

	MaxIterations int

	// SystemPrompt overrides the embedded template. It is rendered with the
	// registered tools either way.
	SystemPrompt string

	Logger   logger.Config
	LogHTTP  bool
	Observer output.SessionObserver
	HTTPAddr string
}

func NewContainer(cfg Config) (*Container, error) {
	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	c, err := NewContainerWithLogger(cfg, log)
	if err != nil {
		log.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWithLogger wires everything on top of an existing logger. The
// container takes ownership of log and closes it in Close.
func NewContainerWithLogger(cfg Config, log output.LoggerPort) (*Container, error) {
	llm, err := newLLM(cfg, log)
	if err != nil {
		return nil, err
	}

	tools, err := newToolRegistry(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	base := cfg.SystemPrompt
	if base == "" {
		base = prompts.SystemPromptTemplate
	}
	systemPrompt, err := prompts.GenerateSystemPrompt(base, tools)
	if err != nil {
		return nil, fmt.Errorf("failed to build system prompt: %w", err)
	}

	var opts []executor.Option
	if cfg.Observer != nil {
		opts = append(opts, executor.WithObserver(cfg.Observer))
	}

	uc := executor.New(llm, tools, log, executor.Config{
		SystemPrompt:  systemPrompt,
		MaxIterations: cfg.MaxIterations,
	}, opts...)

	return &Container{
		LLM:           llm,
		Logger:        log,
		Tools:         tools,
		SessionRunner: uc,
		SystemPrompt:  systemPrompt,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}

func newLLM(cfg Config, log output.LoggerPort) (output.LLMPort, error) {
	llmLog := log.Named("llm")

	switch strings.ToLower(cfg.LLMBackend) {
	case "", BackendOpenAI:
		return openaicompat.NewAdapter(openaicompat.Config{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			BaseURL:     cfg.OpenAIBaseURL,
			Temperature: float32(cfg.Temperature),
			Logger:      llmLog,
			LogHTTP:     cfg.LogHTTP,
		}), nil
	case BackendLangchain:
		llm, err := langchain.NewAdapter(langchain.Config{
			APIKey:      cfg.OpenAIAPIKey,
			Model:       cfg.OpenAIModel,
			BaseURL:     cfg.OpenAIBaseURL,
			Temperature: cfg.Temperature,
			Logger:      llmLog,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create langchain backend: %w", err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", cfg.LLMBackend)
	}
}

func newToolRegistry(cfg Config, log output.LoggerPort) (*service.ToolRegistry, error) {
	toolLog := log.Named("tools")

	weather := wttr.NewClient(wttr.Config{
		BaseURL: cfg.WttrBaseURL,
		Timeout: cfg.ToolTimeout,
		Logger:  toolLog,
	})
	search := tavily.NewClient(tavily.Config{
		APIKey:  cfg.TavilyAPIKey,
		BaseURL: cfg.TavilyBaseURL,
		Timeout: cfg.ToolTimeout,
		Logger:  toolLog,
	})

	return service.NewToolRegistry(
		tool.NewWeatherTool(weather, toolLog),
		tool.NewAttractionTool(search, toolLog),
	)
}
