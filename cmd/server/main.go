package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nightfly_backend/internal/config"
	"nightfly_backend/internal/database"
	"nightfly_backend/internal/gateway"
	"nightfly_backend/internal/middleware"
	"nightfly_backend/internal/repositories"
	"nightfly_backend/internal/router"
	"nightfly_backend/internal/services"
	"nightfly_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()

	// Initialize Logger
	utils.InitLogger(cfg.Log.Level, cfg.Log.Format)

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize Database
	store, err := database.Open(startupCtx, cfg.Store)
	if err != nil {
		utils.LogError(err, "Failed to open store")
		os.Exit(1)
	}
	utils.LogInfo("Store initialized", map[string]interface{}{"driver": cfg.Store.Driver})

	if cfg.SeedDemo {
		clubService := services.NewClubService(repositories.NewClubRepository(store))
		seeded, err := clubService.SeedDemoClubs(startupCtx)
		if err != nil {
			utils.LogWarn("Demo club seeding failed", map[string]interface{}{"error": err.Error()})
		} else if seeded > 0 {
			utils.LogInfo("Demo clubs seeded", map[string]interface{}{"count": seeded})
		}
	}

	var otpRepo repositories.OTPRepository
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			utils.LogError(err, "Failed to connect to Redis")
			os.Exit(1)
		}
		otpRepo = repositories.NewRedisOTPRepository(redisClient)
		utils.LogInfo("OTP store initialized", map[string]interface{}{"backend": "redis", "addr": cfg.Redis.Addr})
	} else {
		otpRepo = repositories.NewMemoryOTPRepository()
		utils.LogWarn("REDIS_ADDR not set, OTP codes are kept in process memory")
	}

	if cfg.Auth.JWTSecret == "" {
		utils.LogWarn("JWT_SECRET not set, every gated request will be redirected to login")
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	router.Setup(engine, router.Dependencies{
		Store:    store,
		OTPRepo:  otpRepo,
		SMS:      gateway.NewSMSSender(cfg.SMS.URL, cfg.SMS.APIKey, cfg.Payment.ClientTimeout),
		Payments: gateway.NewPaymentGateway(cfg.Payment.BaseURL, cfg.Payment.AuthToken, cfg.Payment.ClientTimeout),
		Tokens:   utils.NewTokenService(cfg.Auth.JWTSecret),
		OTP: services.OTPSettings{
			TTL:            cfg.Auth.OTPTTL,
			ResendCooldown: cfg.Auth.OTPResendCooldown,
		},
		CookieSecure: cfg.Auth.CookieSecure,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.LogInfo("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
	if err := store.Close(shutdownCtx); err != nil {
		utils.LogError(err, "Failed to close store")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			utils.LogError(err, "Failed to close Redis client")
		}
	}
	utils.LogInfo("Server exited")
}
