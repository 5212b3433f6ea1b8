// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, database, services and routes into a
// running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/database"
	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/handlers"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/services/email"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"codeberg.org/oliverandrich/kingcooking/internal/views"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	repo := repository.New(db)
	secure := strings.HasPrefix(cfg.Server.BaseURL, "https://")

	sessions, err := session.NewManager(&cfg.Session, repo, secure)
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	flashStore, err := flash.NewStore(&cfg.Session, secure)
	if err != nil {
		return fmt.Errorf("failed to create flash store: %w", err)
	}

	// Mail transport is optional; without it password recovery reports an
	// error instead of sending.
	var mailer handlers.Mailer
	if mailService, mailErr := email.NewService(&cfg.SMTP, cfg.Server.BaseURL); mailErr != nil {
		slog.Warn("mail transport disabled", "error", mailErr)
	} else {
		mailer = mailService
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := views.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	e.Renderer = renderer

	setupMiddleware(e, cfg, repo, sessions)
	setupRoutes(e, cfg, repo, sessions, flashStore, mailer)

	// Background cleanup of expired sessions and reset tokens.
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go runCleanup(cleanupCtx, repo)

	return startWithGracefulShutdown(ctx, e, cfg)
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}

// runCleanup drops expired sessions and reset tokens once per hour.
func runCleanup(ctx context.Context, repo *repository.Repository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.DeleteExpiredSessions(ctx); err != nil {
				slog.Error("session_cleanup_failed", "error", err)
			}
			if err := repo.DeleteExpiredResetTokens(ctx); err != nil {
				slog.Error("reset_token_cleanup_failed", "error", err)
			}
		}
	}
}
