package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/stratahub/strata-portal/internal/http/handlers"
	"github.com/stratahub/strata-portal/internal/http/middleware"
	"github.com/stratahub/strata-portal/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	HealthHandler *handlers.HealthHandler
	AuthHandler   *handlers.AuthHandler
	ModelHandler  *handlers.ModelHandler
	AdminHandler  *handlers.AdminHandler

	AuthMiddleware *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.RequestLogger(cfg.Log))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.AuthMiddleware.RequireAuth())
	{
		// Reserved sub-resources go before the :id wildcard.
		api.GET("/:model", cfg.ModelHandler.List)
		api.POST("/:model", cfg.ModelHandler.Create)
		api.GET("/:model/_table", cfg.ModelHandler.Table)
		api.GET("/:model/_schema", cfg.ModelHandler.Schema)
		api.GET("/:model/_export", cfg.ModelHandler.Export)
		api.POST("/:model/_import", cfg.ModelHandler.Import)
		api.GET("/:model/:id", cfg.ModelHandler.Get)
		api.PATCH("/:model/:id", cfg.ModelHandler.Update)
		api.DELETE("/:model/:id", cfg.ModelHandler.Delete)
	}

	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	{
		admin.GET("/models", cfg.AdminHandler.ListModels)
		admin.GET("/models/:model", cfg.AdminHandler.GetModel)
	}

	return router
}
