package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brickshare-es/brickshare-backend/api/controllers"
	webhookcontrollers "github.com/brickshare-es/brickshare-backend/api/controllers/webhooks"
	"github.com/brickshare-es/brickshare-backend/api/middleware"
	"github.com/brickshare-es/brickshare-backend/internal/catalog"
	"github.com/brickshare-es/brickshare-backend/internal/legosets"
	"github.com/brickshare-es/brickshare-backend/internal/mailer"
	"github.com/brickshare-es/brickshare-backend/internal/orders"
	"github.com/brickshare-es/brickshare-backend/internal/pudopoints"
	"github.com/brickshare-es/brickshare-backend/internal/shipments"
	"github.com/brickshare-es/brickshare-backend/internal/subscriptions"
	"github.com/brickshare-es/brickshare-backend/internal/wishlist"
	stripewebhook "github.com/brickshare-es/brickshare-backend/internal/webhooks/stripe"
	"github.com/brickshare-es/brickshare-backend/pkg/config"
	"github.com/brickshare-es/brickshare-backend/pkg/db"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
	"github.com/brickshare-es/brickshare-backend/pkg/metrics"
	"github.com/brickshare-es/brickshare-backend/pkg/redis"
	"github.com/brickshare-es/brickshare-backend/pkg/stripe"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   redis.Pinger
	Metrics *metrics.HTTPMetrics

	PudoPoints    pudopoints.Service
	Shipments     shipments.Service
	Catalog       catalog.Service
	Wishlist      wishlist.Service
	Subscriptions subscriptions.Service
	LegoSets      legosets.Service
	Mailer        mailer.Service
	Orders        orders.Service

	StripeClient  *stripe.Client
	StripeWebhook *stripewebhook.Service
	StripeGuard   *stripewebhook.IdempotencyGuard
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessDeps(deps)))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/webhooks", func(r chi.Router) {
		r.Post("/stripe", webhookcontrollers.StripeWebhook(deps.StripeWebhook, deps.StripeClient, deps.StripeGuard, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/pudo-point", func(r chi.Router) {
			r.Get("/", controllers.PudoPointGet(deps.PudoPoints, logg))
			r.Put("/", controllers.PudoPointSave(deps.PudoPoints, logg))
			r.Delete("/", controllers.PudoPointDelete(deps.PudoPoints, logg))
		})
		r.Post("/pudo-points/search", controllers.PudoPointsSearch(deps.PudoPoints, logg))

		r.Route("/shipments", func(r chi.Router) {
			r.Get("/", controllers.ShipmentsList(deps.Shipments, logg))
			r.Patch("/{shipmentId}", controllers.ShipmentUpdate(deps.Shipments, logg))
			r.Post("/{shipmentId}/preregister", controllers.ShipmentPreregister(deps.Shipments, logg))
			r.Post("/{shipmentId}/return", controllers.ShipmentReturnRequest(deps.Shipments, logg))
			r.Get("/{shipmentId}/label", controllers.ShipmentLabel(deps.Shipments, logg))
			r.Post("/{shipmentId}/pickup", controllers.ShipmentPickup(deps.Shipments, logg))
			r.Get("/{shipmentId}/tracking", controllers.ShipmentTracking(deps.Shipments, logg))
		})

		r.Get("/products", controllers.CatalogList(deps.Catalog, logg))

		r.Get("/wishlist", controllers.WishlistIDs(deps.Wishlist, logg))
		r.Post("/wishlist/toggle", controllers.WishlistToggle(deps.Wishlist, logg))

		r.Post("/checkout-session", controllers.CheckoutSessionCreate(deps.Subscriptions, logg))

		r.Post("/lego-sets/lookup", controllers.LegoSetLookup(deps.LegoSets, logg))
		r.Post("/emails", controllers.EmailSend(deps.Mailer, logg))
		r.Get("/orders", controllers.OrdersList(deps.Orders, logg))
	})

	return r
}

func readinessDeps(deps Deps) map[string]controllers.Pinger {
	return controllers.ReadinessDeps(deps.DB, deps.Redis)
}
