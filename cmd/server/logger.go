package main

import (
	"fmt"
	"log/slog"

	"github.com/nfjones/blogmart-api/internal/config"
	"github.com/nfjones/blogmart-api/internal/platform/logger"
)

// setupAppLogger configures and initializes the application logger based on
// config settings. When echo_queries is enabled the level is forced down to
// debug so per-statement store logging actually reaches the output.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	serverCfg := cfg.Server
	if cfg.Database.EchoQueries {
		serverCfg.LogLevel = "debug"
	}

	l, err := logger.Setup(serverCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	return l, nil
}
