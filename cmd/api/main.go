package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brickshare-es/brickshare-backend/api/routes"
	"github.com/brickshare-es/brickshare-backend/internal/catalog"
	"github.com/brickshare-es/brickshare-backend/internal/legosets"
	"github.com/brickshare-es/brickshare-backend/internal/mailer"
	"github.com/brickshare-es/brickshare-backend/internal/orders"
	"github.com/brickshare-es/brickshare-backend/internal/pudopoints"
	"github.com/brickshare-es/brickshare-backend/internal/shipments"
	"github.com/brickshare-es/brickshare-backend/internal/subscriptions"
	"github.com/brickshare-es/brickshare-backend/internal/users"
	stripewebhook "github.com/brickshare-es/brickshare-backend/internal/webhooks/stripe"
	"github.com/brickshare-es/brickshare-backend/internal/wishlist"
	"github.com/brickshare-es/brickshare-backend/pkg/config"
	"github.com/brickshare-es/brickshare-backend/pkg/correos"
	"github.com/brickshare-es/brickshare-backend/pkg/db"
	"github.com/brickshare-es/brickshare-backend/pkg/logger"
	"github.com/brickshare-es/brickshare-backend/pkg/mailtrap"
	"github.com/brickshare-es/brickshare-backend/pkg/metrics"
	"github.com/brickshare-es/brickshare-backend/pkg/migrate"
	"github.com/brickshare-es/brickshare-backend/pkg/rebrickable"
	"github.com/brickshare-es/brickshare-backend/pkg/redis"
	"github.com/brickshare-es/brickshare-backend/pkg/stripe"
)

const shutdownGrace = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe client", err)
		os.Exit(1)
	}

	correosClient, err := correos.NewClient(cfg.Correos)
	if err != nil {
		logg.Error(context.Background(), "failed to create correos client", err)
		os.Exit(1)
	}

	rebrickableClient, err := rebrickable.NewClient(cfg.Rebrickable.APIKey)
	if err != nil {
		logg.Error(context.Background(), "failed to create rebrickable client", err)
		os.Exit(1)
	}

	// The mail provider is optional outside production.
	var mailClient *mailtrap.Client
	if cfg.Mailtrap.APIToken != "" {
		mailClient, err = mailtrap.NewClient(cfg.Mailtrap.APIToken)
		if err != nil {
			logg.Error(context.Background(), "failed to create mailtrap client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "mailtrap token unset, email delivery disabled")
	}

	pudoService, err := pudopoints.NewService(pudopoints.ServiceParams{
		Repo:    pudopoints.NewRepository(dbClient.DB()),
		Correos: correosClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create pudo point service", err)
		os.Exit(1)
	}

	mailerParams := mailer.ServiceParams{FromEmail: cfg.Mailtrap.FromEmail}
	if mailClient != nil {
		mailerParams.Client = mailClient
	}
	mailerService, err := mailer.NewService(mailerParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create mailer service", err)
		os.Exit(1)
	}

	shipmentsService, err := shipments.NewService(shipments.ServiceParams{
		Repo:    shipments.NewRepository(dbClient.DB()),
		Carrier: correosClient,
		Pudo:    pudopoints.NewRepository(dbClient.DB()),
		Mailer:  mailerService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shipment service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo: catalog.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.ServiceParams{
		Repo: wishlist.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	subscriptionsService, err := subscriptions.NewService(subscriptions.ServiceParams{
		Stripe: stripeClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create subscription service", err)
		os.Exit(1)
	}

	legoSetsService, err := legosets.NewService(legosets.ServiceParams{
		Rebrickable: rebrickableClient,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create lego set service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.ServiceParams{
		Repo: orders.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		UsersRepo: users.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Eventing.WebhookIdempotencyTTL, "stripe")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook idempotency guard", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Metrics:       httpMetrics,
			PudoPoints:    pudoService,
			Shipments:     shipmentsService,
			Catalog:       catalogService,
			Wishlist:      wishlistService,
			Subscriptions: subscriptionsService,
			LegoSets:      legoSetsService,
			Mailer:        mailerService,
			Orders:        ordersService,
			StripeClient:  stripeClient,
			StripeWebhook: webhookService,
			StripeGuard:   webhookGuard,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
