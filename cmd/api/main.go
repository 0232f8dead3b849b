package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sbaral/bookpasal-backend/api/routes"
	cartsvc "github.com/sbaral/bookpasal-backend/internal/cart"
	checkoutsvc "github.com/sbaral/bookpasal-backend/internal/checkout"
	"github.com/sbaral/bookpasal-backend/internal/notifications"
	ordersvc "github.com/sbaral/bookpasal-backend/internal/orders"
	"github.com/sbaral/bookpasal-backend/pkg/config"
	"github.com/sbaral/bookpasal-backend/pkg/db"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
	"github.com/sbaral/bookpasal-backend/pkg/mail"
	"github.com/sbaral/bookpasal-backend/pkg/metrics"
	"github.com/sbaral/bookpasal-backend/pkg/migrate"
	"github.com/sbaral/bookpasal-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storefrontMetrics := metrics.NewStorefrontMetrics(promRegistry)

	cartPersister, err := cartsvc.NewRedisPersister(redisClient, cfg.Cart.SessionTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart persister", err)
		os.Exit(1)
	}
	cartStore, err := cartsvc.NewStore(cartPersister)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	mailer, err := mail.NewSendgridClient(cfg.Sendgrid, cfg.Store)
	if err != nil {
		logg.Error(context.Background(), "failed to create mail client", err)
		os.Exit(1)
	}

	dispatcher, err := notifications.NewDispatcher(
		mailer,
		notifications.NewRenderer(cfg.Store),
		notifications.NewFailureRepository(dbClient.DB()),
		storefrontMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification dispatcher", err)
		os.Exit(1)
	}

	ordersService, err := ordersvc.NewService(
		ordersvc.NewRepository(dbClient.DB()),
		dbClient,
		dispatcher,
		storefrontMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	flatRate, err := cfg.Shipping.FlatRateAmount()
	if err != nil {
		logg.Error(context.Background(), "invalid shipping rate", err)
		os.Exit(1)
	}
	currency, err := enums.ParseCurrency(cfg.Store.Currency)
	if err != nil {
		logg.Error(context.Background(), "invalid store currency", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		cartStore,
		ordersService,
		dispatcher,
		checkoutsvc.FlatRatePolicy{Rate: flatRate},
		currency,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			cartStore,
			checkoutService,
			ordersService,
			promRegistry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
