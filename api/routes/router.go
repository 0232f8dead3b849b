package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sbaral/bookpasal-backend/api/controllers"
	"github.com/sbaral/bookpasal-backend/api/middleware"
	cartsvc "github.com/sbaral/bookpasal-backend/internal/cart"
	checkoutsvc "github.com/sbaral/bookpasal-backend/internal/checkout"
	ordersvc "github.com/sbaral/bookpasal-backend/internal/orders"
	"github.com/sbaral/bookpasal-backend/pkg/config"
	"github.com/sbaral/bookpasal-backend/pkg/db"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP db.Pinger,
	cartStore *cartsvc.Store,
	checkoutService *checkoutsvc.Service,
	ordersService ordersvc.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	currency, err := enums.ParseCurrency(cfg.Store.Currency)
	if err != nil {
		currency = enums.CurrencyNPR
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionTTL, cfg.App.IsProd(), logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(cartStore, logg))
			r.Delete("/", controllers.CartClear(cartStore, logg))
			r.Post("/items", controllers.CartAddItem(cartStore, currency, logg))
			r.Patch("/items", controllers.CartUpdateQuantity(cartStore, logg))
			r.Delete("/items", controllers.CartRemoveItem(cartStore, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(checkoutService, logg))
		r.Get("/orders/{orderNumber}", controllers.OrderLookup(ordersService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminAuth, logg))
		r.Patch("/orders/{orderNumber}/status", controllers.AdminUpdateOrderStatus(ordersService, logg))
	})

	return r
}
