package api

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/ecoscan/ewaste-api/docs"
	"github.com/ecoscan/ewaste-api/internal/api/handler"
	"github.com/ecoscan/ewaste-api/internal/api/middleware"
	"github.com/ecoscan/ewaste-api/internal/core/ports"
	"github.com/ecoscan/ewaste-api/internal/core/service"
	"github.com/ecoscan/ewaste-api/internal/infrastructure/db/postgres"
	redisstore "github.com/ecoscan/ewaste-api/internal/infrastructure/db/redis"
	"github.com/ecoscan/ewaste-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	pool *pgxpool.Pool,
	rdb *redis.Client,
	classifier ports.Classifier,
	store ports.ImageStore,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("ewaste"))
	// Upload limit plus headroom for the multipart envelope; the classify
	// handler enforces the exact per-file bound.
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%d", cfg.Upload.MaxBytes+64*1024)))

	// --- Dependencies ---
	authRepo := postgres.NewAuthRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	sessions := redisstore.NewSessionStore(rdb)

	authService := service.NewAuthService(authRepo, sessions, cfg.JWTSecret, cfg.TokenTTL)
	classificationService := service.NewClassificationService(store, classifier, ledgerRepo, log)
	reportService := service.NewReportService(ledgerRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL)
	classifyHandler := handler.NewClassifyHandler(classificationService, cfg.Upload.MaxBytes)
	reportHandler := handler.NewReportHandler(reportService)

	sessionGate := middleware.Auth(cfg.JWTSecret, sessions)

	// --- Public routes ---
	e.GET("/", authHandler.Index)
	e.GET("/login", authHandler.LoginForm)
	e.POST("/login", authHandler.Login)
	e.GET("/signup", authHandler.SignupForm)
	e.POST("/signup", authHandler.Signup)

	// --- Authenticated routes ---
	authed := e.Group("", sessionGate)
	authed.GET("/dashboard", reportHandler.Dashboard)
	authed.GET("/history", reportHandler.History)
	authed.GET("/classify", classifyHandler.Form)
	authed.POST("/classify", classifyHandler.Classify)
	authed.GET("/logout", authHandler.Logout)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
