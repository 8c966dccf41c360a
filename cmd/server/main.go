package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/job-browser/internal/config"
	"github.com/honeycarbs/job-browser/internal/mcp"
	"github.com/honeycarbs/job-browser/pkg/logging"
	"github.com/honeycarbs/job-browser/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	res, cleanup, err := mcp.LoadResources(context.Background(), cfg, logger)
	if err != nil {
		os.Exit(1)
	}

	srv := mcp.NewServer(logger, cfg, res)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		shutdown.Graceful(
			[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
			10*time.Second,
			logger,
			shutdown.Server("mcp server", srv),
			shutdown.Func("resources", cleanup),
		)
	}()

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
		cleanup()
		return
	}

	// resources are released by the shutdown sequence
	<-stopped
	logger.Info("MCP server stopped")
}
