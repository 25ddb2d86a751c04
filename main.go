// Glide MCP Server - A Model Context Protocol server for the Glide apps API
// Exposes both Glide API generations (v1, v2) as tools with runtime switching
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/glide-mcp-server/internal/glide"
	"github.com/olgasafonova/glide-mcp-server/tools"
	"github.com/olgasafonova/glide-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "glide-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Glide MCP Server exposes the Glide apps REST API (v1 and v2) as tools.

Available tools:
- set_api_version: Choose the API version (v1 or v2) and set the API key
- get_app: Get metadata for a Glide app
- get_tables: List the tables of an app
- get_table_rows: Read rows from a table (optional limit/offset)
- add_table_row: Append a row to a table
- update_table_row: Overwrite columns of an existing row

Data tools require a configured version: call set_api_version first unless
the server was started with credentials in the environment.

Configure via environment variables:
- GLIDE_API_KEY: API key applied at startup
- GLIDE_API_VERSION: API version applied at startup (v1 or v2)
- GLIDE_TIMEOUT: Backend HTTP timeout in seconds (default 30)
- METRICS_ADDR: Listen address for Prometheus metrics and health endpoints (empty disables)`

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration from environment
	config, err := glide.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize tracing
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Error("Tracing setup failed", "error", err)
	} else {
		defer shutdownTracing(context.Background()) //nolint:errcheck // best-effort shutdown
	}

	// Create the session; every client it builds uses the configured timeout
	session := glide.NewSession(logger, glide.WithTimeout(config.Timeout))

	// Bootstrap from environment when both credentials are present. A bad
	// version or blank key is not fatal: the server starts unconfigured and
	// waits for set_api_version.
	if config.HasCredentials() {
		if _, err := session.SetVersion(config.APIVersion, config.APIKey); err != nil {
			logger.Warn("Startup credentials rejected, starting unconfigured", "error", err)
		}
	} else {
		logger.Info("No startup credentials, waiting for set_api_version")
	}

	// Optional metrics and health listener
	var metricsSrv *http.Server
	if config.MetricsAddr != "" {
		metricsSrv = &http.Server{
			Addr:              config.MetricsAddr,
			Handler:           newMetricsRouter(session),
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       30 * time.Second,
		}
		go func() {
			logger.Info("Metrics server starting", "addr", config.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server error", "error", err)
			}
		}()
	}

	// Create MCP server
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	// Register all tools
	registry := tools.NewHandlerRegistry(session, logger)
	registry.RegisterAll(server)

	// Run server on stdio transport
	logger.Info("Starting Glide MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"configured", session.Configured(),
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server error: %v", err)
	}

	if metricsSrv != nil {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		if err := metricsSrv.Shutdown(shutCtx); err != nil {
			logger.Error("Metrics server shutdown error", "error", err)
		}
	}
	logger.Info("Server stopped")
}

// newMetricsRouter serves Prometheus metrics and health probes. Readiness is
// process-up; the body reports whether a version is configured so operators
// can tell an idle server from a misconfigured one.
func newMetricsRouter(session *glide.Session) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		if session.Configured() {
			_, _ = w.Write([]byte("ready: session configured"))
		} else {
			_, _ = w.Write([]byte("ready: session unconfigured"))
		}
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
