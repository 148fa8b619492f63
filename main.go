// go_discovery — job discovery MCP server.
//
// Exposes three MCP tools: job_search (keyword/location aggregation over the
// upstream listing catalog, with automatic broadening), job_details (full
// posting text), and search_events (recorded telemetry). Runs as an HTTP MCP
// server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/time/rate"

	"github.com/jobsahayak/go_discovery/internal/engine"
	"github.com/jobsahayak/go_discovery/internal/jobserver"
	"github.com/jobsahayak/go_discovery/internal/telemetry"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8894")
)

func main() {
	initEngine()
	rec := initTelemetry()
	if rec != nil {
		defer rec.Close()
	}

	slog.Info("starting go_discovery", slog.String("port", mcpPort))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_discovery",
		Version: version,
	}, nil)

	jobserver.RegisterTools(server, rec)
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_discovery",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	engine.Init(engine.Config{
		UpstreamURL:      env.Str("UPSTREAM_URL", "https://jobs.khelnaukri.in/wp-json/wp/v2/job-listings"),
		UpstreamPageSize: env.Int("UPSTREAM_PAGE_SIZE", 20),
		FetchTimeout:     env.Duration("FETCH_TIMEOUT", 10*time.Second),
		Limiter:          rate.NewLimiter(rate.Limit(env.Float("UPSTREAM_RPS", 4)), 2),
		KeywordCoverage:  env.Float("KEYWORD_COVERAGE", 0.6),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	})

	engine.InitCache(
		env.Str("REDIS_URL", ""),
		env.Duration("CACHE_TTL", 5*time.Minute),
		env.Int("CACHE_MAX_ENTRIES", 1000),
		env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
	)
}

// initTelemetry picks the event store: Postgres when DATABASE_URL is set,
// a local SQLite file otherwise. Failure disables recording but never blocks
// startup — the engine works fine without it.
func initTelemetry() telemetry.Recorder {
	fifoCap := env.Int("TELEMETRY_CAP", telemetry.DefaultCap)

	if dbURL := env.Str("DATABASE_URL", ""); dbURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		store, err := telemetry.NewPostgresStore(ctx, dbURL, fifoCap)
		if err != nil {
			slog.Warn("telemetry: postgres init failed, recording disabled", slog.Any("error", err))
			return nil
		}
		slog.Info("telemetry: postgres store ready")
		return store
	}

	path := env.Str("TELEMETRY_DB", filepath.Join(os.Getenv("HOME"), ".go_discovery", "events.db"))
	store, err := telemetry.NewSQLiteStore(path, fifoCap)
	if err != nil {
		slog.Warn("telemetry: sqlite init failed, recording disabled", slog.Any("error", err))
		return nil
	}
	slog.Info("telemetry: sqlite store ready", slog.String("path", path))
	return store
}
