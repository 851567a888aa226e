package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fajarnugraha/cetakin-backend/api/controllers"
	"github.com/fajarnugraha/cetakin-backend/api/middleware"
	"github.com/fajarnugraha/cetakin-backend/internal/catalog"
	"github.com/fajarnugraha/cetakin-backend/internal/orders"
	"github.com/fajarnugraha/cetakin-backend/pkg/config"
	"github.com/fajarnugraha/cetakin-backend/pkg/db"
	"github.com/fajarnugraha/cetakin-backend/pkg/logger"
	"github.com/fajarnugraha/cetakin-backend/pkg/metrics"
	pkgredis "github.com/fajarnugraha/cetakin-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	Catalog     catalog.Service
	Orders      orders.Service
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger, deps.HTTPMetrics),
		middleware.CORS(),
	)

	var idempotencyStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
	}
	r.Use(middleware.Idempotency(idempotencyStore, deps.Logger))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, redisPinger(deps.Redis)))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Catalog, deps.Logger))
			r.Get("/{id}", controllers.GetProduct(deps.Catalog, deps.Logger))
			r.Get("/{id}/materials", controllers.ListProductMaterials(deps.Catalog, deps.Logger))
			r.Get("/{id}/finishings", controllers.ListProductFinishings(deps.Catalog, deps.Logger))
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", controllers.ListMaterials(deps.Catalog, deps.Logger))
			r.Get("/{id}", controllers.GetMaterial(deps.Catalog, deps.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
			r.Post("/", controllers.CreateOrder(deps.Orders, deps.Logger))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, deps.Logger))
			r.Patch("/{id}/status", controllers.UpdateOrderStatus(deps.Orders, deps.Logger))
			r.Post("/{id}/approve", controllers.ApproveOrder(deps.Orders, deps.Logger))
			r.Post("/{id}/reject", controllers.RejectOrder(deps.Orders, deps.Logger))
		})

		r.Post("/calculate-price", controllers.CalculatePrice(deps.Orders, deps.Logger))
	})

	return r
}

func redisPinger(client *pkgredis.Client) pkgredis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
