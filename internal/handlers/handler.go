package handlers

import (
	"time"

	"crowdcount/internal/logger"
	"crowdcount/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config carries the HTTP-layer knobs injected from configuration.
type Config struct {
	SessionTTL     time.Duration
	AllowedOrigins []string
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cfg      Config
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cfg Config) *Handler {
	return &Handler{services: services, log: log, cfg: cfg}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(h.corsConfig()))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint, never session-gated
	router.GET("/health", h.health)

	api := router.Group("/api")
	{
		api.POST("/register", h.register)
		api.POST("/login", h.login)
		api.POST("/logout", h.logout)
	}

	// Session-gated endpoints
	protected := api.Group("", h.sessionMiddleware)
	{
		protected.GET("/user", h.getCurrentUser)
		protected.GET("/analytics/dashboard", h.dashboardAnalytics)
		protected.GET("/video-analytics", h.videoAnalytics)
	}

	return router
}

// corsConfig allows credentialed cross-origin requests. With no origins
// configured every origin is echoed back, matching the permissive setup the
// frontend expects during development.
func (h *Handler) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(h.cfg.AllowedOrigins) > 0 {
		cfg.AllowOrigins = h.cfg.AllowedOrigins
	} else {
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cfg
}
