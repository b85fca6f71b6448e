package main

import (
	"fmt"

	"travel-agent/internal/di"
	"travel-agent/internal/infrastructure/logger"
	"travel-agent/internal/infrastructure/prompts"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func toolsCmd() *cobra.Command {
	var showPrompt bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig("tools")
			container, err := di.NewContainerWithLogger(cfg, logger.NewNop())
			if err != nil {
				return err
			}
			defer container.Close()

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)
			for _, def := range container.Tools.Definitions() {
				bold.Fprintln(out, prompts.Signature(def))
				fmt.Fprintf(out, "  %s\n", def.Description)
			}

			if showPrompt {
				fmt.Fprintln(out)
				fmt.Fprintln(out, container.SystemPrompt)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPrompt, "prompt", false, "Also print the rendered system prompt")

	return cmd
}
