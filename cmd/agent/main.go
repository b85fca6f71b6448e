package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	maxIterations int
	backend       string
	logLevel      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agent",
		Short: "Travel assistant driven by a Thought/Action model loop",
		Long: `Runs a language model in a Thought/Action loop with weather and
attraction tools until it calls finish(answer=...).

Configuration comes from .env, .env.$APP_ENV and the process environment
(OPENAI_API_KEY, OPENAI_BASE_URL, OPENAI_MODEL, TAVILY_API_KEY, ...).`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().IntVarP(&maxIterations, "max-iterations", "m", 0, "Iteration ceiling per session (0 uses AGENT_MAX_ITERATIONS or 8)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "LLM backend: openai or langchain (overrides LLM_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(toolsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
