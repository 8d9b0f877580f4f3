package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/http/api"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/http/swagger"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/postgres"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	app "github.com/sportsreelstechnical/sports-reels-sub001/internal/app"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/config"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/logger"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
	statsRefreshInterval  = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input).
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	engine := scoring.NewEngine(
		scoring.WithScoreThresholds(cfg.ScoreGreen, cfg.ScoreYellow),
		scoring.WithMinutesTargets(cfg.MinutesTarget, cfg.MinutesPartial),
		scoring.WithCapsTarget(cfg.CapsTarget),
		scoring.WithGBEPointThresholds(cfg.GBEGreenPoints, cfg.GBEYellowPoints),
		scoring.WithMaxRecommendations(cfg.MaxRecommendations),
	)

	opts := []app.Option{
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithShardCount(cfg.ShardCount),
		app.WithEngine(engine),
	}

	var store repository.Store
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			os.Stderr.WriteString("failed to connect to postgres: " + err.Error() + "\n")
			return
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			os.Stderr.WriteString("failed to migrate schema: " + err.Error() + "\n")
			return
		}
		store = postgres.NewStore(db)
		opts = append(opts, app.WithStore(store))
		log.Info(ctx, "using postgres store")
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	go startSystemMetricsUpdater(ctx)
	go startStatsRefresher(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(svc, svc, cfg.MaxProspectsLimit)
	apiServer.Register(ctx, mux)
	swagger.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater refreshes runtime gauges periodically.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			metrics.UpdateSystemMemoryUsage(m.Alloc)
			metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
		}
	}
}

// startStatsRefresher polls the service stats so store and queue gauges
// stay fresh even without traffic.
func startStatsRefresher(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(statsRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats publishes the gauges as a side effect.
			_ = svc.GetStats()
		}
	}
}
