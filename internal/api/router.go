package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Arjunreddypulugu/timeclock-web/internal/api/handler"
	"github.com/Arjunreddypulugu/timeclock-web/internal/api/middleware"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
	"github.com/Arjunreddypulugu/timeclock-web/internal/core/service"
	"github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/config"
	mongodb "github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/db/mongo"
	redisdb "github.com/Arjunreddypulugu/timeclock-web/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("timeclock"))

	// --- Repositories ---
	workerRepo := mongodb.NewWorkerRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	siteRepo := mongodb.NewSiteRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	// --- Services ---
	geofence := service.NewGeofenceDirectory(siteRepo, log)
	guard := redisdb.NewClockGuard(rdb, cfg.Clock.GuardTTL)
	clockService := service.NewClockService(workerRepo, sessionRepo, geofence, guard, log)
	siteService := service.NewSiteService(siteRepo, log)
	reportService := service.NewReportService(sessionRepo, log)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	clockHandler := handler.NewClockHandler(clockService)
	siteHandler := handler.NewSiteHandler(siteService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// --- Worker-facing clock routes (device cookie, no auth) ---
	clock := e.Group("/v1/clock")
	clock.POST("/status", clockHandler.Status)
	clock.POST("/register", clockHandler.Register)
	clock.POST("/in", clockHandler.ClockIn)
	clock.POST("/out", clockHandler.ClockOut)

	// --- Back-office routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	admin := e.Group("/v1/admin", middleware.Auth(cfg.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	admin.GET("/sites", siteHandler.List)
	admin.POST("/sites", siteHandler.Create)
	admin.GET("/sessions", reportHandler.List)
	admin.GET("/sessions/export", reportHandler.Export)

	// --- Health probes, metrics, API docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
