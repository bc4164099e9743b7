package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhub/task-api/docs"
	"github.com/taskhub/task-api/internal/api/handler"
	"github.com/taskhub/task-api/internal/api/middleware"
	"github.com/taskhub/task-api/internal/core/authz"
	"github.com/taskhub/task-api/internal/core/service"
	"github.com/taskhub/task-api/internal/core/token"
	mongodb "github.com/taskhub/task-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskhub/task-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenCfg token.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Dependencies ---
	credRepo := mongodb.NewCredentialRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	listCache := redisdb.NewTaskCache(rdb)

	issuer := token.NewIssuer(tokenCfg)
	validator := token.NewValidator(tokenCfg)

	authService := service.NewAuthService(credRepo, issuer, log)
	taskService := service.NewTaskService(taskRepo, listCache, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	authed := middleware.Auth(validator, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authed)

	// --- Task routes (token + per-operation policy) ---
	tasks := e.Group("/v1/tasks", authed)
	tasks.GET("", taskHandler.List, middleware.Require(authz.ViewTasks))
	tasks.GET("/:id", taskHandler.Get, middleware.Require(authz.ViewTasks))
	tasks.POST("", taskHandler.Create, middleware.Require(authz.CreateTask))
	tasks.PUT("/:id", taskHandler.Update, middleware.Require(authz.EditTask))
	tasks.PATCH("/:id/complete", taskHandler.SetCompletion, middleware.Require(authz.CompleteTask))
	tasks.DELETE("/:id", taskHandler.Delete, middleware.Require(authz.DeleteTask))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
