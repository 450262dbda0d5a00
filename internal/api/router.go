package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/birthdaykeeper/birthday-api/docs"
	"github.com/birthdaykeeper/birthday-api/internal/api/handler"
	"github.com/birthdaykeeper/birthday-api/internal/api/middleware"
	"github.com/birthdaykeeper/birthday-api/internal/core/ports"
	"github.com/birthdaykeeper/birthday-api/internal/core/service"
	"github.com/birthdaykeeper/birthday-api/internal/core/token"
)

// Options carries the auth configuration the router needs beyond its
// collaborators.
type Options struct {
	JWTSecret  string
	JWTIssuer  string
	TokenTTL   time.Duration
	BcryptCost int

	// Mongo and Redis are only used by the readiness probe and may be nil.
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds the Echo instance with all routes registered. It takes the
// repository ports rather than database handles so the full HTTP surface can
// be assembled over in-memory stores in tests; cmd/api wires the real
// drivers.
func NewRouter(opts Options, users ports.UserRepository, friends ports.FriendRepository, guard ports.LoginGuard, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("birthdaykeeper"))

	// --- Auth pipeline: resolve the identity, then gate by policy ---
	codec := token.New(opts.JWTSecret, opts.JWTIssuer)
	e.Use(middleware.ResolveIdentity(codec, users))
	e.Use(middleware.Policy())

	// --- Dependencies ---
	authService := service.NewAuthService(users, codec, guard, opts.TokenTTL, opts.BcryptCost, log)
	friendService := service.NewFriendService(friends, log)
	userService := service.NewUserService(users, friends, opts.BcryptCost, log)

	authHandler := handler.NewAuthHandler(authService)
	friendHandler := handler.NewFriendHandler(friendService)
	adminHandler := handler.NewAdminHandler(userService)
	userHandler := handler.NewUserHandler(authService)

	// --- Anonymous routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/auth/authenticate", authHandler.Authenticate)
	e.GET("/swagger/*", echoswagger.WrapHandler)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.Mongo, opts.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Authenticated routes ---
	e.POST("/api/logout", authHandler.Logout)
	e.POST("/api/users/password", userHandler.ChangePassword)

	friendGroup := e.Group("/api/friends")
	friendGroup.GET("", friendHandler.List)
	friendGroup.GET("/paginated", friendHandler.ListPaginated)
	friendGroup.GET("/:id", friendHandler.Get)
	friendGroup.POST("", friendHandler.Create)
	friendGroup.PUT("/:id", friendHandler.Update)
	friendGroup.DELETE("/:id", friendHandler.Delete)

	// --- Admin routes (ADMIN role enforced by the policy middleware) ---
	adminGroup := e.Group("/api/admin")
	adminGroup.GET("/users", adminHandler.ListUsers)
	adminGroup.GET("/users/paginated", adminHandler.ListUsersPaginated)
	adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
	adminGroup.PUT("/users/:id/password", adminHandler.OverridePassword)

	return e
}
