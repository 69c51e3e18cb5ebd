package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/studroom/studroom/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"studroom.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	Port     int    `short:"p" long:"port" help:"Server port to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
}

func main() {
	kctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		kctx.Exit(1)
	}

	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.Port != 0 {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("Starting stud room",
		"addr", cfg.ListenAddress(),
		"tables", len(cfg.Tables))
	for _, tc := range cfg.Tables {
		logger.Info("Configured table",
			"name", tc.Name,
			"game", tc.Game,
			"mixed", tc.Mixed,
			"stakes", fmt.Sprintf("%d/%d", tc.SmallBet, tc.BigBet),
			"ante", tc.Ante,
			"bringIn", tc.BringIn)
	}

	srv := server.NewServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", "error", err)
		kctx.Exit(1)
	}
}
