package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-agent/internal/adapter/httpapi"
	"travel-agent/internal/di"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig("server")
			if addr != "" {
				cfg.HTTPAddr = addr
			}
			cfg.Logger.Console = true

			container, err := di.NewContainer(cfg)
			if err != nil {
				return fmt.Errorf("initialization failed: %w", err)
			}
			defer container.Close()

			api := httpapi.NewServer(container.SessionRunner, container.Tools, container.Logger)
			srv := &http.Server{
				Addr:              cfg.HTTPAddr,
				Handler:           api.Router(httpapi.NewAccessLogger("travel-agent")),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				container.Logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			container.Logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")

	return cmd
}
