package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gitlab.com/prestrafe/spaceteam/config"
	"gitlab.com/prestrafe/spaceteam/server"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var debug, singlePlayer bool
	var addr string
	var port int

	command := &cobra.Command{
		Use:          "spaceteam",
		Short:        "Runs the cooperative party game server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("debug") {
				cfg.Debug = debug
			}
			if flags.Changed("single-player") {
				cfg.SinglePlayer = singlePlayer
			}
			if flags.Changed("addr") {
				cfg.Addr = addr
			}
			if flags.Changed("port") {
				cfg.Port = port
			}

			return run(cmd.Context(), cfg)
		},
	}

	command.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	command.Flags().BoolVar(&singlePlayer, "single-player", false, "let a single participant play alone")
	command.Flags().StringVar(&addr, "addr", "", "listen address")
	command.Flags().IntVar(&port, "port", 0, "listen port")
	return command
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	words, err := cfg.Words()
	if err != nil {
		return err
	}
	if cfg.SinglePlayer {
		logger.Warn("Single player mode is enabled")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	filter := server.NewOriginFilter(cfg.AllowedOrigins)
	return server.New(cfg.Addr, cfg.Port, cfg.Match(), words, filter, logger).Run(ctx)
}

func newLogger(debug bool) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return loggerConfig.Build()
}
