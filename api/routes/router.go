package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/souqline/catalog-backend/api/controllers"
	"github.com/souqline/catalog-backend/api/middleware"
	"github.com/souqline/catalog-backend/internal/catalog"
	"github.com/souqline/catalog-backend/pkg/config"
	"github.com/souqline/catalog-backend/pkg/logger"
	"github.com/souqline/catalog-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	store controllers.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	catalogService catalog.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App),
	)
	if httpMetrics != nil {
		r.Use(httpMetrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, store, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		r.Get("/products", controllers.ListCatalogProducts(catalogService, cfg, logg))
		r.Post("/products", controllers.CreateCatalogProduct(catalogService, logg))
		r.Get("/categories/{categoryID}/products", controllers.BrowseCategoryProducts(catalogService, cfg, logg))
	})

	return r
}
