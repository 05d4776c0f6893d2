package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Yquannn/sibbap-admin/docs" // Swagger docs
	"github.com/Yquannn/sibbap-admin/internal/charts"
	"github.com/Yquannn/sibbap-admin/internal/config"
	"github.com/Yquannn/sibbap-admin/internal/handlers"
	"github.com/Yquannn/sibbap-admin/internal/jobs"
	"github.com/Yquannn/sibbap-admin/internal/middleware"
	"github.com/Yquannn/sibbap-admin/internal/services"
	"github.com/Yquannn/sibbap-admin/internal/upstream"
	"github.com/Yquannn/sibbap-admin/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title SIBBAP Admin API
// @version 1.0
// @description Loan monitor and time-deposit screens of the SIBBAP cooperative admin console

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Core API client
	client := upstream.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	logger.Info("Using core API", "base_url", cfg.UpstreamBaseURL, "timeout", cfg.UpstreamTimeout)

	// Chart definitions are registered once, here
	registry := charts.NewRegistry()
	if err := charts.RegisterLoanMonitor(registry); err != nil {
		logger.Error("Failed to register charts", "error", err)
		os.Exit(1)
	}

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(client, registry, worker, cfg)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker; in-flight screen fetches are cancelled
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)
		v1.GET("/jobs/status", h.Job.Status)

		// One-shot views
		members := v1.Group("/members/:member_id")
		{
			members.GET("/loan-monitor", h.LoanMonitor.Show)
			members.GET("/loan-monitor/export", h.LoanMonitor.Export)
		}

		deposits := v1.Group("/time-deposits")
		{
			deposits.GET("", h.TimeDeposit.Index)
			deposits.GET("/export", h.TimeDeposit.Export)
		}

		// Mounted screens
		screens := v1.Group("/screens")
		{
			screens.POST("/loan-monitor", h.Screen.MountLoanMonitor)
			screens.POST("/time-deposits", h.Screen.MountTimeDeposits)
			screens.GET("/:screen_id", h.Screen.Show)
			screens.PATCH("/:screen_id/filters", h.Screen.UpdateFilters)
			screens.POST("/:screen_id/reload", h.Screen.Reload)
			screens.POST("/:screen_id/modal", h.Screen.Modal)
			screens.DELETE("/:screen_id", h.Screen.Delete)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Unmount screens nobody has looked at for a while
	sweepEvery := cfg.ScreenIdleTimeout / 2
	if sweepEvery < time.Minute {
		sweepEvery = time.Minute
	}
	worker.ScheduleEvery(sweepEvery, func(ctx context.Context) error {
		logger.Debug("[Job] Sweeping idle screens...")
		return svcs.Screens.SweepIdle(ctx)
	})

	// Probe the core API so /health reflects its reachability
	if cfg.UpstreamProbeEvery > 0 {
		worker.ScheduleEveryImmediate(cfg.UpstreamProbeEvery, func(ctx context.Context) error {
			logger.Debug("[Job] Probing core API...")
			return svcs.Health.Probe(ctx)
		})
	}

	logger.Info("Scheduled recurring jobs")
}
