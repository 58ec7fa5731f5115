package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/christianbugingo/ticket-website/internal/domain"
	"github.com/christianbugingo/ticket-website/internal/gateway"
	"github.com/christianbugingo/ticket-website/internal/handler"
	authmw "github.com/christianbugingo/ticket-website/internal/middleware"
	"github.com/christianbugingo/ticket-website/internal/repository"
	"github.com/christianbugingo/ticket-website/internal/service"
	"github.com/christianbugingo/ticket-website/pkg/config"
	"github.com/christianbugingo/ticket-website/pkg/database"
	"github.com/christianbugingo/ticket-website/pkg/logger"
	"github.com/christianbugingo/ticket-website/pkg/middleware"
	pkgredis "github.com/christianbugingo/ticket-website/pkg/redis"
	"github.com/christianbugingo/ticket-website/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting ITIKE API...", zap.String("version", cfg.App.Version))

	ctx := context.Background()

	// Telemetry
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("Telemetry init failed, continuing without tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Postgres
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected",
		zap.Int32("min_conns", cfg.Database.MinConns),
		zap.Int32("max_conns", cfg.Database.MaxConns))

	// Redis is optional: without it search results are uncached and
	// idempotency is skipped, but bookings still work.
	var redisClient *pkgredis.Client
	redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		appLog.Warn("Redis connection failed, running without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLog.Info("Redis connected", zap.Int("pool_size", cfg.Redis.PoolSize))
	}

	// Kafka event publisher, degrading to no-op when the broker is down
	var eventPublisher service.EventPublisher
	eventPublisher, err = service.NewKafkaEventPublisher(ctx, &service.EventPublisherConfig{
		Brokers:     cfg.Kafka.Brokers,
		Topic:       cfg.Notifications.Topic,
		ServiceName: cfg.App.Name,
		ClientID:    cfg.Kafka.ClientID,
	})
	if err != nil {
		appLog.Warn("Kafka connection failed, using no-op publisher", zap.Error(err))
		eventPublisher = service.NewNoOpEventPublisher()
	} else {
		appLog.Info("Kafka event publisher connected")
	}
	defer eventPublisher.Close()

	// Repositories
	pool := db.Pool()
	userRepo := repository.NewPostgresUserRepository(pool)
	companyRepo := repository.NewPostgresCompanyRepository(pool)
	busRepo := repository.NewPostgresBusRepository(pool)
	routeRepo := repository.NewPostgresRouteRepository(pool)
	scheduleRepo := repository.NewPostgresScheduleRepository(pool)
	bookingRepo := repository.NewPostgresBookingRepository(pool)
	statsRepo := repository.NewPostgresStatsRepository(pool)

	var searchCache repository.SearchCache
	if redisClient != nil {
		searchCache = repository.NewRedisSearchCache(redisClient)
	} else {
		searchCache = repository.NewNoOpSearchCache()
	}

	// Payment gateway
	paymentGateway := gateway.NewMockGateway(&gateway.MockGatewayConfig{
		SuccessRate: cfg.Payment.SuccessRate,
		DelayMs:     cfg.Payment.DelayMs,
	})

	// Services
	authService := service.NewAuthService(userRepo, &service.AuthServiceConfig{
		JWTSecret:         cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.AccessTokenTTL,
		Issuer:            cfg.JWT.Issuer,
	})
	bookingService := service.NewBookingService(bookingRepo, paymentGateway, eventPublisher, searchCache, &service.BookingServiceConfig{
		ChargeTimeout: cfg.Payment.ChargeTimeout,
	})
	catalogService := service.NewCatalogService(scheduleRepo, routeRepo, busRepo, companyRepo, searchCache)
	companyService := service.NewCompanyService(companyRepo, userRepo, bookingRepo)
	adminService := service.NewAdminService(userRepo, companyRepo, statsRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	companyHandler := handler.NewCompanyHandler(companyService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		gin.DisableConsoleColor()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/metrics", func(c *gin.Context) {
		stats := db.Stats()
		c.JSON(http.StatusOK, gin.H{
			"db_pool": gin.H{
				"total_conns":    stats.TotalConns(),
				"acquired_conns": stats.AcquiredConns(),
				"idle_conns":     stats.IdleConns(),
				"max_conns":      stats.MaxConns(),
			},
		})
	})

	requireAuth := authmw.RequireAuth(authService)
	requireOperator := authmw.RequireRole(domain.RoleBusOperator, domain.RoleAdmin)
	requireAdmin := authmw.RequireRole(domain.RoleAdmin)

	var idempotency gin.HandlerFunc
	if redisClient != nil {
		idempotency = middleware.Idempotency(middleware.DefaultIdempotencyConfig(redisClient.Client()))
	} else {
		idempotency = func(c *gin.Context) { c.Next() }
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "ok",
				"service": cfg.App.Name,
				"version": cfg.App.Version,
			})
		})

		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetProfile)
			auth.PUT("/me", requireAuth, authHandler.UpdateProfile)
		}

		v1.GET("/routes", catalogHandler.ListRoutes)
		v1.GET("/schedules/search", catalogHandler.SearchSchedules)
		v1.GET("/schedules/:id", catalogHandler.GetSchedule)

		bookings := v1.Group("/bookings", requireAuth)
		{
			bookings.POST("", idempotency, bookingHandler.CreateBooking)
			bookings.POST("/:id/cancel", idempotency, bookingHandler.CancelBooking)
			bookings.GET("", bookingHandler.GetUserBookings)
			bookings.GET("/:id", bookingHandler.GetBooking)
		}

		v1.POST("/companies", requireAuth, companyHandler.RegisterCompany)

		operator := v1.Group("/operator", requireAuth, requireOperator)
		{
			operator.GET("/company", companyHandler.GetMyCompany)
			operator.GET("/bookings", companyHandler.ListCompanyBookings)
			operator.POST("/buses", catalogHandler.CreateBus)
			operator.GET("/buses", catalogHandler.ListBuses)
			operator.POST("/schedules", catalogHandler.CreateSchedule)
			operator.GET("/schedules", catalogHandler.ListCompanySchedules)
		}

		admin := v1.Group("/admin", requireAuth, requireAdmin)
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/companies", adminHandler.ListCompanies)
			admin.PATCH("/companies/:id/status", adminHandler.UpdateCompanyStatus)
			admin.GET("/stats", adminHandler.GetPlatformStats)
			admin.POST("/routes", catalogHandler.CreateRoute)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	if cfg.Server.EnablePprof {
		go func() {
			pprofAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port+1000)
			appLog.Info(fmt.Sprintf("pprof server listening on %s", pprofAddr))
			if err := http.ListenAndServe(pprofAddr, nil); err != nil {
				appLog.Error("pprof server error", zap.Error(err))
			}
		}()
	}

	go func() {
		appLog.Info(fmt.Sprintf("ITIKE API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}
