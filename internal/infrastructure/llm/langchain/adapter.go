package langchain

import (
	"context"
	"fmt"

	"travel-agent/internal/application/port/output"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var _ output.LLMPort = (*Adapter)(nil)

// Adapter runs the model through langchaingo's OpenAI provider.
type Adapter struct {
	model       llms.Model
	temperature float64
	logger      output.LoggerPort
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	Logger      output.LoggerPort
}

func NewAdapter(cfg Config) (*Adapter, error) {
	opts := []openai.Option{openai.WithToken(cfg.APIKey)}
	if cfg.Model != "" {
		opts = append(opts, openai.WithModel(cfg.Model))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain openai client: %w", err)
	}
	return NewAdapterWithModel(llm, cfg), nil
}

// NewAdapterWithModel wraps an already constructed langchaingo model.
func NewAdapterWithModel(model llms.Model, cfg Config) *Adapter {
	return &Adapter{
		model:       model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

func (a *Adapter) Generate(ctx context.Context, prompt, systemPrompt string) string {
	return a.GenerateStream(ctx, prompt, systemPrompt, nil)
}

func (a *Adapter) GenerateStream(ctx context.Context, prompt, systemPrompt string, onChunk func(string)) string {
	content := make([]llms.MessageContent, 0, 2)
	if systemPrompt != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	callOpts := []llms.CallOption{llms.WithTemperature(a.temperature)}
	if onChunk != nil {
		callOpts = append(callOpts, llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) > 0 {
				onChunk(string(chunk))
			}
			return nil
		}))
	}

	resp, err := a.model.GenerateContent(ctx, content, callOpts...)
	if err == nil && len(resp.Choices) == 0 {
		err = fmt.Errorf("empty response from model")
	}
	if err != nil {
		if a.logger != nil {
			a.logger.Error("Model call failed", "backend", "langchain", "error", err)
		}
		return fmt.Sprintf("%s %v", output.ModelFaultSentinel, err)
	}

	if a.logger != nil {
		a.logger.Debug("Model call completed", "backend", "langchain", "textLen", len(resp.Choices[0].Content))
	}
	return resp.Choices[0].Content
}
