package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/San2021331091/Smart-Cart-Backend/internal/catalog"
	cataloghttp "github.com/San2021331091/Smart-Cart-Backend/internal/catalog/http"
	"github.com/San2021331091/Smart-Cart-Backend/internal/catalog/memory"
	catalogpg "github.com/San2021331091/Smart-Cart-Backend/internal/catalog/postgres"
	"github.com/San2021331091/Smart-Cart-Backend/internal/config"
	"github.com/San2021331091/Smart-Cart-Backend/internal/event"
	handler "github.com/San2021331091/Smart-Cart-Backend/internal/handler/http"
	"github.com/San2021331091/Smart-Cart-Backend/internal/match"
	"github.com/San2021331091/Smart-Cart-Backend/internal/service"
	"github.com/San2021331091/Smart-Cart-Backend/internal/trending"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/database"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/health"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/httpclient"
	pkgkafka "github.com/San2021331091/Smart-Cart-Backend/pkg/kafka"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/middleware"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/tracing"
)

// App wires together all dependencies and runs the assistant service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
	stopLimiter    context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "assistant",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}
	healthHandler := health.NewHandler()

	source, err := a.newCatalogSource(ctx)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, err
	}
	catalogClient := catalog.NewClient(source, cfg.CatalogBackend, logger)
	healthHandler.Register("catalog", catalogClient.Check)

	// Query events are optional; without brokers answers are simply not published.
	var publisher event.Publisher = event.Noop{}
	if cfg.EventsEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	assistantService := service.NewAssistantService(
		catalogClient,
		trending.NewCounter(),
		logger,
		service.WithResolver(match.NewResolver(match.WithThreshold(cfg.MatchThreshold))),
		service.WithSimilarResults(cfg.SimilarResultsK),
		service.WithPublisher(publisher),
	)
	notificationService := service.NewNotificationService(catalogClient)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimitTrustedProxies)
	if err != nil {
		a.closeOnError()
		return nil, err
	}
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	a.stopLimiter = stopLimiter
	rateLimit := middleware.RateLimit(limiterCtx, middleware.RateLimitConfig{
		RPS:            cfg.RateLimitRPS,
		Burst:          cfg.RateLimitBurst,
		TrustedProxies: trustedProxies,
	}, logger)

	router := handler.NewRouter(handler.RouterConfig{
		Assistant:     assistantService,
		Notifications: notificationService,
		Health:        healthHandler,
		CORS:          corsCfg,
		TrendingLimit: cfg.TrendingDefaultLimit,
		RateLimit:     rateLimit,
		Logger:        logger,
	})

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// newCatalogSource builds the configured catalog backend.
func (a *App) newCatalogSource(ctx context.Context) (catalog.Source, error) {
	cfg := a.cfg

	switch cfg.CatalogBackend {
	case config.BackendPostgres:
		pgCfg := cfg.Postgres()
		pool, err := database.NewPostgresPool(ctx, &pgCfg, a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.pool = pool
		a.logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.Int("port", cfg.PostgresPort),
			slog.String("database", cfg.PostgresDB),
		)
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, "assistant"); err != nil {
			a.logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}

		return catalogpg.NewSource(pool, database.QueryTracer{
			SlowThreshold: cfg.SlowQueryThreshold,
			Logger:        a.logger,
		}), nil

	case config.BackendMemory:
		if cfg.CatalogSeedFile == "" {
			a.logger.Warn("memory catalog has no seed file, serving an empty catalog")
			return memory.New(nil), nil
		}
		src, err := memory.LoadFile(cfg.CatalogSeedFile)
		if err != nil {
			return nil, fmt.Errorf("load memory catalog: %w", err)
		}
		a.logger.Info("memory catalog loaded", slog.String("seed_file", cfg.CatalogSeedFile))
		return src, nil

	default:
		baseClient := httpclient.New(httpclient.Config{
			Timeout:         cfg.CatalogTimeout,
			MaxRetries:      cfg.CatalogMaxRetries,
			RetryWaitMin:    100 * time.Millisecond,
			RetryWaitMax:    time.Second,
			MaxConnsPerHost: 32,
		})

		cbCfg := httpclient.DefaultCircuitBreakerConfig("catalog")
		cbCfg.Timeout = cfg.CBTimeout
		cbCfg.FailureRatio = cfg.CBFailureRatio
		cbCfg.MinRequests = cfg.CBMinRequests
		cbClient := httpclient.NewCircuitBreakerClient(baseClient, cbCfg, a.logger)
		a.logger.Info("circuit breaker initialized",
			slog.String("name", cbCfg.Name),
			slog.Duration("timeout", cbCfg.Timeout),
			slog.Uint64("min_requests", uint64(cbCfg.MinRequests)),
		)

		return cataloghttp.NewSource(cbClient, cfg.CatalogURL), nil
	}
}

// closeOnError releases what NewApp opened before failing.
func (a *App) closeOnError() {
	if a.tracerShutdown != nil {
		_ = a.tracerShutdown(context.Background())
	}
	if a.producer != nil {
		_ = a.producer.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

// Handler returns the HTTP handler serving all routes.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("catalog_backend", a.cfg.CatalogBackend),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, PostgreSQL pool.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), a.cfg.HTTPShutdownTimeout)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Flush spans after the HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.pool != nil {
		a.pool.Close()
	}

	if a.stopLimiter != nil {
		a.stopLimiter()
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
