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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/api/routes"
	"github.com/mcastellon/shopora-backend/internal/address"
	authsvc "github.com/mcastellon/shopora-backend/internal/auth"
	"github.com/mcastellon/shopora-backend/internal/brands"
	"github.com/mcastellon/shopora-backend/internal/cart"
	"github.com/mcastellon/shopora-backend/internal/categories"
	checkoutsvc "github.com/mcastellon/shopora-backend/internal/checkout"
	"github.com/mcastellon/shopora-backend/internal/coupons"
	"github.com/mcastellon/shopora-backend/internal/orders"
	"github.com/mcastellon/shopora-backend/internal/products"
	"github.com/mcastellon/shopora-backend/internal/users"
	"github.com/mcastellon/shopora-backend/pkg/config"
	"github.com/mcastellon/shopora-backend/pkg/db"
	"github.com/mcastellon/shopora-backend/pkg/logger"
	"github.com/mcastellon/shopora-backend/pkg/metrics"
	"github.com/mcastellon/shopora-backend/pkg/migrate"
	"github.com/mcastellon/shopora-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

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

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
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

	svcs, err := buildServices(cfg, dbClient, redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, registry, httpMetrics, svcs),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
	logg.Info(ctx, "api server stopped")
}

func buildServices(cfg *config.Config, dbClient *db.Client, redisClient *redis.Client) (routes.Services, error) {
	taxPercent, err := decimal.NewFromString(cfg.Cart.TaxPercent)
	if err != nil {
		return routes.Services{}, err
	}

	gormDB := dbClient.DB()
	brandRepo := brands.NewBrandRepository(gormDB)
	categoryRepo := categories.NewCategoryRepository(gormDB)
	productRepo := products.NewProductRepository(gormDB)
	couponRepo := coupons.NewCouponRepository(gormDB)
	addressRepo := address.NewAddressRepository(gormDB)
	orderRepo := orders.NewOrderRepository(gormDB)
	txnRepo := orders.NewTransactionRepository(gormDB)
	userRepo := users.NewUserRepository(gormDB)

	sessions, err := cart.NewSessionStore(redisClient, cfg.Session.TTL)
	if err != nil {
		return routes.Services{}, err
	}

	brandSvc, err := brands.NewService(brandRepo)
	if err != nil {
		return routes.Services{}, err
	}
	categorySvc, err := categories.NewService(categoryRepo)
	if err != nil {
		return routes.Services{}, err
	}
	productSvc, err := products.NewService(productRepo)
	if err != nil {
		return routes.Services{}, err
	}
	couponSvc, err := coupons.NewService(couponRepo)
	if err != nil {
		return routes.Services{}, err
	}
	addressSvc, err := address.NewService(addressRepo)
	if err != nil {
		return routes.Services{}, err
	}
	cartSvc, err := cart.NewService(sessions, couponRepo, productRepo, taxPercent)
	if err != nil {
		return routes.Services{}, err
	}
	orderSvc, err := orders.NewService(orderRepo, txnRepo, dbClient)
	if err != nil {
		return routes.Services{}, err
	}
	checkoutSvc, err := checkoutsvc.NewService(dbClient, orderRepo, txnRepo, addressSvc, sessions, cartSvc)
	if err != nil {
		return routes.Services{}, err
	}
	authService, err := authsvc.NewService(userRepo, cfg.Password, cfg.JWT)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Auth:       authService,
		Brands:     brandSvc,
		Categories: categorySvc,
		Products:   productSvc,
		Coupons:    couponSvc,
		Cart:       cartSvc,
		Addresses:  addressSvc,
		Checkout:   checkoutSvc,
		Orders:     orderSvc,
	}, nil
}
