// Package main is the entry point for the contact book API server. It stays
// minimal: read configuration, build the logger, start the server. All
// actual wiring lives in internal/server.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rahmatd/contactbook/internal/config"
	"github.com/rahmatd/contactbook/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// Ensure the database directory exists (skip for in-memory databases).
	if cfg.DBPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("path", cfg.DBPath),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		DBPath:     cfg.DBPath,
		BcryptCost: cfg.BcryptCost,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
