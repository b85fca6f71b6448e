package main

import (
	"travel-agent/internal/di"
	"travel-agent/internal/infrastructure/env"
)

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(name string) di.Config {
	cfg := di.ConfigFromEnv(env.NewEnvService(), name)
	if maxIterations > 0 {
		cfg.MaxIterations = maxIterations
	}
	if backend != "" {
		cfg.LLMBackend = backend
	}
	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	return cfg
}
