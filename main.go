package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/agroxhub-api/checkout"
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/Kariqs/agroxhub-api/fulfillment"
	"github.com/Kariqs/agroxhub-api/initializers"
	"github.com/Kariqs/agroxhub-api/logistics"
	"github.com/Kariqs/agroxhub-api/middlewares"
	"github.com/Kariqs/agroxhub-api/payments"
	"github.com/Kariqs/agroxhub-api/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := initializers.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := initializers.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := initializers.ConnectToDB(cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer initializers.CloseDB(db, logger)

	if err := initializers.SyncDatabase(db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	policy, err := logistics.ParseSelectionPolicy(cfg.ProviderSelection)
	if err != nil {
		logger.Fatal("Invalid provider selection", zap.Error(err))
	}

	var cache logistics.DistanceCache
	if rdb := initializers.ConnectToRedis(cfg, logger); rdb != nil {
		defer rdb.Close()
		cache = logistics.NewRedisDistanceCache(rdb, cfg.DistanceCacheTTL, logger)
	}
	resolver := logistics.NewOSRMResolver(cfg.DistanceAPIBase, cfg.DistanceTimeout, cache, logger)

	checkoutService := checkout.NewService(db, resolver, policy, logger)
	fulfillmentService := fulfillment.NewService(db, logger)
	gateway := payments.NewPaystackGateway(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.PaymentTimeout)
	paymentService := payments.NewService(db, gateway, logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	server := gin.New()
	server.Use(gin.Recovery(), middlewares.RequestLogger(logger), middlewares.Metrics())
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Register(server, cfg.JWTSecret, routes.Controllers{
		Checkout:  controllers.NewCheckoutController(checkoutService, logger),
		Order:     controllers.NewOrderController(checkoutService, logger),
		Payment:   controllers.NewPaymentController(paymentService, logger),
		Logistics: controllers.NewLogisticsController(fulfillmentService, logger),
		Cart:      controllers.NewCartController(db, logger),
		Region:    controllers.NewRegionController(db, logger),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server started", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
