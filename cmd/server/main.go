package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	accountapp "github.com/shop/storefront/internal/application/account"
	cartapp "github.com/shop/storefront/internal/application/cart"
	catalogapp "github.com/shop/storefront/internal/application/catalog"
	checkoutapp "github.com/shop/storefront/internal/application/checkout"
	favoritesapp "github.com/shop/storefront/internal/application/favorites"
	orderapp "github.com/shop/storefront/internal/application/order"
	"github.com/shop/storefront/internal/infrastructure/commerce"
	"github.com/shop/storefront/internal/infrastructure/config"
	"github.com/shop/storefront/internal/infrastructure/event"
	"github.com/shop/storefront/internal/infrastructure/logger"
	"github.com/shop/storefront/internal/infrastructure/payment"
	"github.com/shop/storefront/internal/infrastructure/storage"
	"github.com/shop/storefront/internal/infrastructure/telemetry"
	"github.com/shop/storefront/internal/interfaces/http/handler"
	"github.com/shop/storefront/internal/interfaces/http/middleware"
	"github.com/shop/storefront/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	// Local key-value store and the repositories on top of it
	store, err := storage.NewStore(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}

	cartRepo := storage.NewKVCartRepository(store)
	draftRepo := storage.NewKVDraftRepository(store)
	orderCache := storage.NewKVOrderCache(store)
	accountStore := storage.NewKVAccountStore(store)

	// Remote commerce API client
	commerceClient, err := commerce.NewClient(
		&commerce.Config{
			BaseURL: cfg.Commerce.BaseURL,
			APIKey:  cfg.Commerce.APIKey,
			Timeout: cfg.Commerce.Timeout,
		},
		commerce.NewAccountTokenSource(accountStore),
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize commerce client", zap.Error(err))
	}
	orderRepo := commerce.NewOrderRepository(commerceClient)

	// Payment gateway
	gateway, err := payment.NewPaystackAdapter(&payment.PaystackConfig{
		SecretKey: cfg.Payment.SecretKey,
		BaseURL:   cfg.Payment.BaseURL,
		Timeout:   cfg.Payment.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to initialize payment gateway", zap.Error(err))
	}

	// Event bus and projectors
	bus := event.NewInMemoryEventBus(log)
	badge := cartapp.NewBadgeProjector(cartRepo, log)
	bus.Subscribe(badge)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		_ = bus.Stop(context.Background())
	}()

	// Application services
	cartService := cartapp.NewCartService(cartRepo, commerceClient, bus, log)
	checkoutService := checkoutapp.NewCheckoutService(draftRepo, cartRepo, orderRepo, gateway, bus, log)
	orderService := orderapp.NewOrderService(orderRepo, orderCache, bus, log)
	catalogService := catalogapp.NewCatalogService(commerceClient)
	favoritesService := favoritesapp.NewFavoritesService(commerceClient)
	accountService := accountapp.NewAccountService(commerceClient, accountStore, log)

	// Background reconciliation of optimistic local cancellations
	go reconcileLoop(ctx, orderService, cfg.Sync.ReconcileInterval, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidations()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if tracerProvider.IsEnabled() {
		engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
		engine.Use(middleware.TracingAttributes())
	}

	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler(cfg.App.Name, cfg.App.Env)).
		Register(handler.NewProductHandler(catalogService)).
		Register(handler.NewCartHandler(cartService, badge)).
		Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewFavoritesHandler(favoritesService)).
		Register(handler.NewAccountHandler(accountService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// reconcileLoop periodically replays locally cancelled orders against the
// server until the process stops
func reconcileLoop(ctx context.Context, orders *orderapp.OrderService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := orders.Reconcile(ctx)
			if err != nil {
				log.Warn("order reconciliation pass failed", zap.Error(err))
				continue
			}
			if count > 0 {
				log.Info("reconciled locally cancelled orders", zap.Int("count", count))
			}
		}
	}
}
