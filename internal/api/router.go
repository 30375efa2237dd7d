package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peanutblog/blog-api/docs"
	"github.com/peanutblog/blog-api/internal/api/handler"
	"github.com/peanutblog/blog-api/internal/api/middleware"
	"github.com/peanutblog/blog-api/internal/core/domain"
	"github.com/peanutblog/blog-api/internal/core/service"
	"github.com/peanutblog/blog-api/internal/infrastructure/config"
	mongodb "github.com/peanutblog/blog-api/internal/infrastructure/db/mongo"
	"github.com/peanutblog/blog-api/internal/ratelimit"
	"github.com/peanutblog/blog-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The rate-limit store is owned by the caller, which also shuts it down.
func NewRouter(db *mongo.Database, rdb *redis.Client, store ratelimit.Store, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)

	// One issuer per principal variant; sharing a secret between them would
	// let a user token pass the admin surface.
	userIssuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	adminIssuer := token.NewIssuer(cfg.AdminJWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, userIssuer)
	adminService := service.NewAdminService(adminRepo, roleRepo, adminIssuer)
	roleService := service.NewRoleService(roleRepo)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	roleHandler := handler.NewRoleHandler(roleService)

	userAuth := middleware.Identity(userIssuer, authService.FindByID, middleware.CtxUserKey, "user")
	adminAuth := middleware.Identity(adminIssuer, adminService.FindByID, middleware.CtxAdminKey, "admin")

	disabled := cfg.IsTest()

	generalLimiter := middleware.RateLimit(store, middleware.Tier{
		Name:    "general",
		Window:  cfg.RateLimit.APIWindow,
		Ceiling: cfg.RateLimit.APIMax,
		Message: "Too many requests, please try again later",
	}, disabled, log)
	authLimiter := middleware.RateLimit(store, middleware.Tier{
		Name:              "auth",
		Window:            cfg.RateLimit.AuthWindow,
		Ceiling:           cfg.RateLimit.AuthMax,
		CountFailuresOnly: true,
		Message:           "Too many failed login attempts, please try again later",
	}, disabled, log)
	strictLimiter := middleware.RateLimit(store, middleware.Tier{
		Name:    "strict",
		Window:  cfg.RateLimit.StrictWindow,
		Ceiling: cfg.RateLimit.StrictMax,
		Message: "Operation too frequent, please try again later",
	}, disabled, log)

	// --- Root & operational endpoints (outside the general limiter) ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "hello world"})
	})
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- API routes ---
	apiGroup := e.Group("/api", generalLimiter)

	users := apiGroup.Group("/users")
	users.POST("/register", authHandler.Register, authLimiter)
	users.POST("/login", authHandler.Login, authLimiter)
	users.GET("/me", authHandler.Me, userAuth)

	adminUsers := apiGroup.Group("/admin/users")
	adminUsers.POST("/login", adminHandler.Login, authLimiter)
	adminUsers.GET("", adminHandler.Index, adminAuth, middleware.Permit("admin", "basic", "common"))
	adminUsers.POST("", adminHandler.Create, adminAuth, middleware.Permit("admin"))
	adminUsers.PUT("/:id", adminHandler.Update, strictLimiter, adminAuth, middleware.Permit())
	adminUsers.POST("/:id/role/:roleId", adminHandler.AssignRole, adminAuth, middleware.Permit("admin"))

	adminRoles := apiGroup.Group("/admin/roles", adminAuth)
	adminRoles.GET("", roleHandler.Index, middleware.Permit("admin", "basic"))
	adminRoles.POST("", roleHandler.Create, middleware.Permit("admin", "basic"))
	adminRoles.PUT("/:id", roleHandler.Update)

	e.RouteNotFound("/*", func(c echo.Context) error {
		return domain.NewError(http.StatusNotFound, "Router Not Found", nil)
	})

	return e
}
