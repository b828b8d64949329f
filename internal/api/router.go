package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/admarket/portal/internal/api/handler"
	"github.com/admarket/portal/internal/api/middleware"
	"github.com/admarket/portal/internal/core/domain"
	"github.com/admarket/portal/internal/core/service"
	"github.com/admarket/portal/internal/infrastructure/db/postgres"
	"github.com/admarket/portal/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, secretKey string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	sessionStore := redis.NewSessionStore(rdb)
	sessions := service.NewSessionManager(sessionStore, userRepo, secretKey)
	authService := service.NewAuthService(userRepo, sessions)

	authHandler := handler.NewAuthHandler(authService, sessions)
	dashboards := handler.NewDashboardHandler()

	e.Use(middleware.Session(sessions))

	// --- Public pages ---
	e.GET("/", dashboards.Index)
	e.GET("/auth/login", authHandler.LoginForm)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/register", authHandler.RegisterForm)
	e.POST("/auth/register", authHandler.Register)

	// --- Session-holder routes ---
	e.POST("/auth/logout", authHandler.Logout, middleware.RequireSession())
	e.GET("/dashboard", dashboards.Dashboard, middleware.RequireSession())

	// --- Role dashboards (ADMIN admitted everywhere by the guard) ---
	e.GET("/publisher/dashboard", dashboards.Publisher, middleware.RequireRoles(domain.RolePublisher))
	e.GET("/advertiser/dashboard", dashboards.Advertiser, middleware.RequireRoles(domain.RoleAdvertiser))
	e.GET("/admin/dashboard", dashboards.Admin, middleware.RequireRoles(domain.RoleAdmin))

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/healthz", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/healthz/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
