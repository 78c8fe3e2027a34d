package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bizportal/internal/auth"
	"bizportal/internal/config"
	"bizportal/internal/database"
	"bizportal/internal/database/migration"
	handlers "bizportal/internal/http/handler"
	"bizportal/internal/http/middleware"
	"bizportal/internal/logger"
	"bizportal/internal/otel"
	"bizportal/internal/repository/postgres"
	"bizportal/internal/service"
	"bizportal/internal/storage"
)

// devSecret is only used outside production when JWT_SECRET is unset.
const devSecret = "bizportal-development-secret-change-me"

// @title Business Portal API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	secret := cfg.Auth.JWTSecret
	if len(secret) < auth.MinSecretLen {
		if cfg.IsProduction() {
			log.Fatal("JWT_SECRET must be set to at least 32 bytes in production")
		}
		log.Warn("JWT_SECRET missing or too short, using development secret")
		secret = devSecret
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Log.ServiceName, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		log.Fatal("failed to initialize object storage", zap.Error(err))
	}

	tokens, err := auth.NewTokenService([]byte(secret), cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatal("failed to initialize token service", zap.Error(err))
	}

	// Initialize repositories and services
	accountRepo := postgres.NewAccountPostgres(db)
	projectRepo := postgres.NewProjectPostgres(db)
	clientDocRepo := postgres.NewClientDocumentPostgres(db)
	adminDocRepo := postgres.NewAdminDocumentPostgres(db)
	dashboardRepo := postgres.NewDashboardPostgres(db)

	docOpts := service.DocumentOptions{
		MaxBytes:      cfg.Upload.MaxBytes,
		PresignExpiry: cfg.MinIO.PresignExpiry,
	}
	deps := handlers.Deps{
		DB:          db,
		Verifier:    tokens,
		Accounts:    service.NewAccountService(accountRepo, tokens, service.AccountOptions{AdminSignup: cfg.Auth.AdminSignup}),
		Projects:    service.NewProjectService(projectRepo, time.Now),
		ClientDocs:  service.NewClientDocumentService(objStore, clientDocRepo, projectRepo, docOpts),
		AdminDocs:   service.NewAdminDocumentService(objStore, adminDocRepo, docOpts),
		Dashboard:   service.NewDashboardService(dashboardRepo, projectRepo, time.Now),
		AuthLimiter: middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst).Handler(),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Multipart framing sits on top of the file itself.
		BodyLimit:             int(cfg.Upload.MaxBytes) + 1024*1024,
		DisableStartupMessage: cfg.IsProduction(),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(log))
	app.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	app.Get("/swagger/*", handlers.SwaggerUI())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, deps)

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server_start", zap.String("addr", addr), zap.String("env", cfg.Env))
		serveErr <- app.Listen(addr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Error("failed to start server", zap.Error(err))
		}
	case <-ctx.Done():
	}

	log.Info("server_shutdown", zap.String("status", "starting"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("server_shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing_shutdown", zap.Error(err))
	}
	log.Info("server_shutdown", zap.String("status", "done"))
}
