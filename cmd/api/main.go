package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/ratemyadjusters/ratemyadjusters-api/config"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/handlers"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/middleware"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/repository"
	"github.com/ratemyadjusters/ratemyadjusters-api/internal/services"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/db"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/httpclient"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/logger"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/metrics"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/profiling"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/recaptcha"
	"github.com/ratemyadjusters/ratemyadjusters-api/pkg/tracing"
)

// registerAPIRoutes registers the versioned public API routes
func registerAPIRoutes(
	group *gin.RouterGroup,
	searchRateLimiter, submitRateLimiter *middleware.RateLimiter,
	entityHandler *handlers.EntityHandler,
	reviewHandler *handlers.ReviewHandler,
	profileHandler *handlers.ProfileHandler,
	contactHandler *handlers.ContactHandler,
	recaptchaHandler *handlers.RecaptchaHandler,
	metaHandler *handlers.MetaHandler,
) {
	// Search-as-you-type. One request per keystroke past the minimum
	// query length, so the limiter is loose.
	group.GET("/entities/:entityType/search", searchRateLimiter.Middleware(), entityHandler.Search)
	group.GET("/entities/:entityType/:id", searchRateLimiter.Middleware(), entityHandler.GetByID)

	// Review submission (public, protected by honeypot + captcha)
	group.POST("/entities/:entityType/reviews", submitRateLimiter.Middleware(), middleware.BodySizeLimit(100*1024), reviewHandler.Submit)

	// Public profile pages
	group.GET("/profiles/:entityType/:slug", searchRateLimiter.Middleware(), profileHandler.GetProfile)

	// Contact form
	group.POST("/contact", submitRateLimiter.Middleware(), middleware.BodySizeLimit(100*1024), contactHandler.Submit)

	// Standalone captcha verification relay
	group.POST("/recaptcha/verify", submitRateLimiter.Middleware(), middleware.BodySizeLimit(10*1024), recaptchaHandler.Verify)

	// Form enumerations
	group.GET("/meta/states", searchRateLimiter.Middleware(), metaHandler.States)
	group.GET("/meta/:entityType/claim-types", searchRateLimiter.Middleware(), metaHandler.ClaimTypes)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting RateMyAdjusters API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (optional)
	profilerStop, err := profiling.InitProfiler(
		profiling.Config{
			Enabled:               cfg.Profiling.Enabled,
			Endpoint:              cfg.Profiling.Endpoint,
			AppName:               cfg.Profiling.AppName,
			SampleTypes:           cfg.Profiling.SampleTypes,
			UploadIntervalSeconds: cfg.Profiling.UploadIntervalSeconds,
		},
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize PostgreSQL connection pool
	pool, err := db.NewPool(context.Background(), db.PoolConfig{
		URL:      cfg.Database.URL,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		logger.Fatal("Failed to initialize database connection pool", zap.Error(err))
	}
	defer db.Close(pool)

	// NOTE: Database migrations run separately via the migrate command

	// Initialize repositories
	entityRepo := repository.NewEntityRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	inquiryRepo := repository.NewInquiryRepository(pool)

	// Initialize captcha verifier
	httpClient := httpclient.NewStandardClient()
	verifier := recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, cfg.ReCAPTCHA.ScoreThreshold, httpClient)

	// Initialize services
	searchService := services.NewSearchService(entityRepo)
	profileService := services.NewProfileService(entityRepo, cfg.Cache.ProfileTTLSeconds)
	reviewService := services.NewReviewService(entityRepo, reviewRepo, verifier, profileService)
	contactService := services.NewContactService(inquiryRepo)
	sitemapService := services.NewSitemapService(entityRepo, cfg.Server.BaseURL, cfg.Sitemap.PageSize)

	// Initialize handlers
	entityHandler := handlers.NewEntityHandler(searchService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	profileHandler := handlers.NewProfileHandler(profileService)
	contactHandler := handlers.NewContactHandler(contactService)
	recaptchaHandler := handlers.NewRecaptchaHandler(verifier)
	metaHandler := handlers.NewMetaHandler()
	sitemapHandler := handlers.NewSitemapHandler(sitemapService)
	healthHandler := handlers.NewHealthHandler(func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(ctx) == nil
	})

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.Observability())
	router.Use(middleware.SecurityHeaders())

	// CORS: only the configured site origins, plus localhost in development
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:  allowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Internal-Api-Token", "traceparent", "tracestate"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	searchRateLimiter := middleware.NewRateLimiter(30, 60) // typeahead traffic
	submitRateLimiter := middleware.NewRateLimiter(2, 5)   // form submissions
	generalRateLimiter := middleware.NewRateLimiter(100, 200)

	// Operational endpoints (not versioned)
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/internal/cache/invalidate", generalRateLimiter.Middleware(), middleware.InternalAuth(cfg.Auth.InternalAPIToken), profileHandler.InvalidateCache)

	// API v1 routes
	v1 := router.Group("/api/v1")
	registerAPIRoutes(v1, searchRateLimiter, submitRateLimiter,
		entityHandler, reviewHandler, profileHandler, contactHandler, recaptchaHandler, metaHandler)

	// Sitemaps are served at the site root for crawlers
	router.GET("/sitemap.xml", generalRateLimiter.Middleware(), sitemapHandler.Index)
	router.GET("/sitemaps/:entityType/:page", generalRateLimiter.Middleware(), sitemapHandler.Page)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
