package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*Adapter)(nil)

// Adapter talks to any OpenAI-compatible chat completions endpoint.
type Adapter struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      output.LoggerPort
}

type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	Logger      output.LoggerPort
	// LogHTTP logs every request body at debug level.
	LogHTTP bool
}

func DefaultConfig(apiKey, model string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://api.openai.com/v1",
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var requestData map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &requestData)
	}

	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.logger.Debug("HTTP Response",
			"status", resp.Status,
			"statusCode", resp.StatusCode,
		)
	}

	return resp, err
}

func NewAdapter(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	if cfg.Logger != nil && cfg.LogHTTP {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &Adapter{
		client:      openai.NewClientWithConfig(config),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

func (a *Adapter) Generate(ctx context.Context, prompt, systemPrompt string) string {
	return a.GenerateStream(ctx, prompt, systemPrompt, nil)
}

func (a *Adapter) GenerateStream(ctx context.Context, prompt, systemPrompt string, onChunk func(string)) string {
	text, err := a.chatStream(ctx, buildMessages(prompt, systemPrompt), onChunk)
	if err != nil {
		if a.logger != nil {
			a.logger.Error("Model call failed", "model", a.model, "error", err)
		}
		return fmt.Sprintf("%s %v", output.ModelFaultSentinel, err)
	}
	return text
}

func (a *Adapter) chatStream(ctx context.Context, messages []entity.Message, onChunk func(string)) (string, error) {
	if a.logger != nil {
		totalChars := 0
		for _, msg := range messages {
			totalChars += len(msg.Content)
		}
		a.logger.Debug("Creating chat completion stream",
			"model", a.model,
			"messagesCount", len(messages),
			"temperature", a.temperature,
			"totalChars", totalChars)
	}

	stream, err := a.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(messages),
		Temperature: a.temperature,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("chat stream failed: %w", err)
	}
	defer stream.Close()

	var text strings.Builder
	chunkCount := 0

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("stream recv error after %d chunks: %w", chunkCount, err)
		}

		chunkCount++

		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		text.WriteString(delta)
		if onChunk != nil {
			onChunk(delta)
		}
	}

	if a.logger != nil {
		a.logger.Debug("Stream completed", "chunks", chunkCount, "textLen", text.Len())
	}
	return text.String(), nil
}

func buildMessages(prompt, systemPrompt string) []entity.Message {
	messages := make([]entity.Message, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, entity.Message{Role: entity.RoleSystem, Content: systemPrompt})
	}
	return append(messages, entity.Message{Role: entity.RoleUser, Content: prompt})
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}
