package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/FrameCraft_Go/internal/cart"
	"github.com/osse101/FrameCraft_Go/internal/eventlog"
	"github.com/osse101/FrameCraft_Go/internal/handler"
	"github.com/osse101/FrameCraft_Go/internal/matcatalog"
	"github.com/osse101/FrameCraft_Go/internal/metrics"
	"github.com/osse101/FrameCraft_Go/internal/pricing"
	"github.com/osse101/FrameCraft_Go/internal/sse"
)

// Options configures the HTTP surface.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
	RateLimit      DetectorConfig

	// ServiceName and Environment are reported by /version.
	ServiceName string
	Environment string
}

// Services are the collaborators the routes call into. EventLog and Events
// are optional; their routes are only mounted when set.
type Services struct {
	Pricing      pricing.Service
	Carts        cart.Service
	Mats         matcatalog.Service
	EventLog     eventlog.Service
	Events       *sse.Hub
	HealthChecks map[string]handler.HealthChecker
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, svc Services) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()

	proxies, invalid := ParseTrustedProxies(opts.TrustedProxies)
	for _, entry := range invalid {
		slog.Default().Warn(LogMsgInvalidProxy, "entry", entry)
	}
	detector := NewAbuseDetector(opts.RateLimit)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, proxies, detector))
	r.Use(RateLimitMiddleware(proxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svc.HealthChecks))
	r.Get("/version", handler.HandleVersion(opts.ServiceName, opts.Environment))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		pricingHandler := handler.NewPricingHandler(svc.Pricing)
		r.Route("/pricing", func(r chi.Router) {
			r.Post("/quote", pricingHandler.HandleQuote)
			r.Post("/specialty/{type}", pricingHandler.HandleSpecialtyQuote)
		})

		r.Route("/attributes", func(r chi.Router) {
			r.Post("/serialize", handler.HandleSerialize())
			r.Post("/deserialize", handler.HandleDeserialize())
		})

		r.Get("/mats", handler.HandleGetMats(svc.Mats))

		cartHandler := handler.NewCartHandler(svc.Carts)
		r.Route("/carts/{storeId}/{sessionId}", func(r chi.Router) {
			r.Use(handler.CartLogScope)
			r.Get("/", cartHandler.HandleGetCart)
			r.Delete("/", cartHandler.HandleClearCart)
			r.Post("/items", cartHandler.HandleAddItem)
			r.Patch("/items/{itemId}", cartHandler.HandleUpdateQuantity)
			r.Delete("/items/{itemId}", cartHandler.HandleRemoveItem)
			r.Post("/sync", cartHandler.HandleSync)
			r.Post("/checkout", cartHandler.HandleCheckout)
		})

		if svc.Events != nil {
			r.Get("/events/stream", sse.Handler(svc.Events))
		}

		r.Route("/admin", func(r chi.Router) {
			r.Get("/metrics", handler.NewAdminMetricsHandler(svc.Events).HandleGetMetrics)
			if svc.EventLog != nil {
				r.Get("/events", handler.NewAdminEventsHandler(svc.EventLog).HandleGetEvents)
			}
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
