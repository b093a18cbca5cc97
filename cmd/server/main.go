// Package main implements the entry point for the todo API server.
// Running the binary without a subcommand serves HTTP; "migrate" applies
// the SQL schema for the configured store and exits.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("todo-api exited with error", "error", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo-api",
		Short:         "HTTP API for managing todos",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := initializeApp()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, log)
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply SQL migrations for the configured store driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := initializeApp()
			if err != nil {
				return err
			}
			return runMigrate(cmd.Context(), cfg, log)
		},
	})

	return root
}

// initializeApp loads configuration and sets up the default logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"environment", cfg.Server.Environment,
		"store_driver", cfg.Store.Driver,
		"llm_provider", cfg.LLM.Provider)

	return cfg, log, nil
}
