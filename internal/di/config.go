package di

import (
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/usecase/executor"
)

const DefaultHTTPAddr = ":8080"

// ConfigFromEnv reads the session configuration. name labels the log file.
func ConfigFromEnv(env output.ConfigPort, name string) Config {
	logCfg := logger.DefaultConfig(name)
	logCfg.Dir = env.GetWithDefault("LOG_DIR", logCfg.Dir)
	logCfg.Level = env.GetWithDefault("LOG_LEVEL", logCfg.Level)

	return Config{
		OpenAIAPIKey:  env.Get("OPENAI_API_KEY"),
		OpenAIBaseURL: env.GetWithDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   env.GetWithDefault("OPENAI_MODEL", "gpt-4o-mini"),
		LLMBackend:    env.GetWithDefault("LLM_BACKEND", BackendOpenAI),
		Temperature:   env.GetFloat("LLM_TEMPERATURE", 0),

		TavilyAPIKey:  env.Get("TAVILY_API_KEY"),
		TavilyBaseURL: env.Get("TAVILY_BASE_URL"),
		WttrBaseURL:   env.Get("WTTR_BASE_URL"),
		ToolTimeout:   env.GetDuration("TOOL_TIMEOUT", 0),

		MaxIterations: env.GetInt("AGENT_MAX_ITERATIONS", executor.DefaultMaxIterations),

		Logger:   logCfg,
		LogHTTP:  env.GetBool("LOG_HTTP", false),
		HTTPAddr: env.GetWithDefault("HTTP_ADDR", DefaultHTTPAddr),
	}
}
