// Package serve provides the HTTP server command for the logbook CLI.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/server"
	"github.com/agentstation/logbook/pkg/constants"
)

// NewCommand creates the serve command. defaults seeds the flag defaults
// from the loaded configuration.
func NewCommand(app application.Application, defaults server.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the log catalog over HTTP",
		Long: `Load the log directory and serve it over a REST API.

Endpoints (under the path prefix, /api/v1 by default):
  GET  /logs          filtered, paginated records
  GET  /logs/stats    totals by level and component
  GET  /logs/{id}     a single record
  POST /reload        rescan the log directory
  GET  /updates/ws    WebSocket reload notifications
  GET  /updates/stream  Server-Sent Events reload notifications

Sending SIGHUP to the process also reloads the catalog.`,
		Example: `  # Serve ./logs on localhost:8080
  logbook serve

  # Serve another directory on all interfaces
  LOG_DIR=/var/log/app logbook serve --host 0.0.0.0 --port 9000

  # Require an API key
  logbook serve --auth --api-key s3cret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := parseConfig(cmd, defaults)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), app, cfg)
		},
	}

	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().String("prefix", defaults.PathPrefix, "API path prefix")

	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Enable CORS for all origins")
	cmd.Flags().StringSlice("cors-origins", defaults.CORSOrigins, "Allowed CORS origins (comma-separated)")

	cmd.Flags().Bool("auth", defaults.AuthEnabled, "Enable API key authentication")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().String("api-key", "", "API key (defaults to the API_KEY setting)")

	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Int("cache-ttl", int(defaults.CacheTTL/time.Second), "Cache TTL in seconds")
	cmd.Flags().Int("default-per-page", defaults.Limits.DefaultPerPage, "Default page size")
	cmd.Flags().Int("max-per-page", defaults.Limits.MaxPerPage, "Maximum page size")

	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")

	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable metrics endpoint")

	return cmd
}

// parseConfig applies command flags over defaults.
func parseConfig(cmd *cobra.Command, defaults server.Config) (server.Config, error) {
	cfg := defaults

	cfg.Port = mustGetInt(cmd, "port")
	cfg.Host = mustGetString(cmd, "host")
	cfg.PathPrefix = mustGetString(cmd, "prefix")
	cfg.CORSEnabled = mustGetBool(cmd, "cors")
	cfg.CORSOrigins = mustGetStringSlice(cmd, "cors-origins")
	cfg.AuthEnabled = mustGetBool(cmd, "auth")
	cfg.AuthHeader = mustGetString(cmd, "auth-header")
	if key := mustGetString(cmd, "api-key"); key != "" {
		cfg.APIKey = key
	}
	cfg.RateLimit = mustGetInt(cmd, "rate-limit")
	cfg.CacheTTL = time.Duration(mustGetInt(cmd, "cache-ttl")) * time.Second
	cfg.Limits.DefaultPerPage = mustGetInt(cmd, "default-per-page")
	cfg.Limits.MaxPerPage = mustGetInt(cmd, "max-per-page")
	cfg.ReadTimeout = mustGetDuration(cmd, "read-timeout")
	cfg.WriteTimeout = mustGetDuration(cmd, "write-timeout")
	cfg.IdleTimeout = mustGetDuration(cmd, "idle-timeout")
	cfg.MetricsEnabled = mustGetBool(cmd, "metrics")

	if envPort := os.Getenv("HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		p, err := parsePort(envPort)
		if err != nil {
			return server.Config{}, err
		}
		cfg.Port = p
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		cfg.Host = envHost
	}

	return cfg, nil
}

func runServer(ctx context.Context, app application.Application, cfg server.Config) error {
	logger := app.Logger()

	logger.Info().
		Int("port", cfg.Port).
		Str("host", cfg.Host).
		Str("prefix", cfg.PathPrefix).
		Bool("cors", cfg.CORSEnabled).
		Bool("auth", cfg.AuthEnabled).
		Int("rate_limit", cfg.RateLimit).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Starting API server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Start()

	// An unloaded catalog still serves; readiness reports 503 until a
	// reload succeeds.
	if report, err := srv.Reload(ctx); err != nil {
		logger.Error().Err(err).Msg("Initial catalog load failed")
	} else {
		logger.Info().
			Str("root", report.Root).
			Int("records", report.Records).
			Int("files", report.FilesScanned).
			Dur("duration", report.Duration).
			Msg("Catalog loaded")
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	return serve(ctx, srv, srv.HTTPServer(), hup, logger)
}

// serve runs httpServer until ctx is cancelled, reloading the catalog for
// every value received on hup, then shuts down gracefully.
func serve(ctx context.Context, srv *server.Server, httpServer *http.Server, hup <-chan os.Signal, logger *zerolog.Logger) error {
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	for {
		select {
		case err, ok := <-serverErr:
			if ok {
				_ = srv.Shutdown(context.Background())
				return fmt.Errorf("server error: %w", err)
			}
			return nil

		case <-hup:
			logger.Info().Msg("SIGHUP received, reloading catalog")
			if report, err := srv.Reload(ctx); err != nil {
				logger.Error().Err(err).Msg("Catalog reload failed")
			} else {
				logger.Info().
					Uint64("generation", report.Generation).
					Int("records", report.Records).
					Msg("Catalog reloaded")
			}

		case <-ctx.Done():
			logger.Info().Msg("Shutting down server gracefully")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("Background services shutdown error")
			}
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}

			logger.Info().Msg("Server stopped")
			return nil
		}
	}
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
