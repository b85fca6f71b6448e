package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"travel-agent/internal/di"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/infrastructure/userinteraction"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	var quiet bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run [request]",
		Short: "Run one session and print the final answer",
		Long: `Run one session for the given request. Without an argument the request
is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := readRequest(args, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			cfg := loadConfig(request)
			if !quiet {
				cfg.Observer = userinteraction.NewConsoleObserver(cmd.OutOrStdout(), userinteraction.Options{Stream: true})
			}

			container, err := di.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()

			outcome := container.SessionRunner.Run(ctx, request, cfg.MaxIterations)
			return reportOutcome(cmd.OutOrStdout(), outcome, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final answer")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Overall session timeout")

	return cmd
}

func readRequest(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Fprintln(out, "Enter a request for the agent:")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read request: %w", err)
	}

	request := strings.TrimSpace(line)
	if request == "" {
		return "", errors.New("request must not be empty")
	}
	return request, nil
}

func reportOutcome(out io.Writer, outcome entity.LoopOutcome, quiet bool) error {
	switch outcome.Status {
	case entity.OutcomeFinished:
		if quiet {
			fmt.Fprintln(out, outcome.Answer)
		}
		return nil
	case entity.OutcomeParseFailed:
		return fmt.Errorf("session stopped: %s", outcome.Reason)
	default:
		if !quiet {
			color.New(color.Faint).Fprintln(out, "Try a higher --max-iterations.")
		}
		return fmt.Errorf("no answer after %d iterations", outcome.Iterations)
	}
}
