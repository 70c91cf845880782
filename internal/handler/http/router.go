package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/San2021331091/Smart-Cart-Backend/internal/service"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/health"
	"github.com/San2021331091/Smart-Cart-Backend/pkg/middleware"
)

// ServiceName labels HTTP metrics and spans.
const ServiceName = "assistant"

// RouterConfig carries the dependencies and settings of the HTTP surface.
type RouterConfig struct {
	Assistant     *service.AssistantService
	Notifications *service.NotificationService
	Health        *health.Handler
	CORS          middleware.CORSConfig
	TrendingLimit int
	Logger        *slog.Logger

	// RateLimit guards the assistant endpoints when set.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter creates a chi router with all assistant service routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	assistant := NewAssistantHandler(cfg.Assistant, cfg.TrendingLimit, cfg.Logger)
	notifications := NewNotificationHandler(cfg.Notifications, cfg.Logger)

	r.Get("/", assistant.Welcome)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}

		r.Route("/api/v1/assistant", func(r chi.Router) {
			r.With(ContentTypeJSON).Post("/ask", assistant.Ask)
			r.With(ContentTypeJSON).Post("/similar", assistant.Similar)
			r.Get("/trending", assistant.Trending)
		})
		r.Get("/api/v1/notifications", notifications.List)

		// Short unversioned aliases; responses use the same envelope as /api/v1.
		r.With(ContentTypeJSON).Post("/ask", assistant.Ask)
		r.With(ContentTypeJSON).Post("/similar", assistant.Similar)
		r.Get("/trending", assistant.Trending)
	})

	return r
}
