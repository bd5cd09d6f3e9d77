package api

import (
	"github.com/gin-gonic/gin"

	"github.com/wonny/papertrade/internal/api/handlers"
	"github.com/wonny/papertrade/internal/api/middleware"
	"github.com/wonny/papertrade/internal/domain/quote"
	"github.com/wonny/papertrade/internal/infra/database/postgres"
	"github.com/wonny/papertrade/internal/pkg/config"
	"github.com/wonny/papertrade/internal/pkg/logger"
	catalogservice "github.com/wonny/papertrade/internal/service/catalog"
	tradingservice "github.com/wonny/papertrade/internal/service/trading"
)

// Router holds all dependencies for API routing
type Router struct {
	engine           *gin.Engine
	config           *config.Config
	dbPool           *postgres.Pool
	healthHandler    *handlers.HealthHandler
	orderHandler     *handlers.OrderHandler
	portfolioHandler *handlers.PortfolioHandler
	stockHandler     *handlers.StockHandler
}

// NewRouter creates a new API router with all dependencies
func NewRouter(cfg *config.Config, dbPool *postgres.Pool, quotes quote.Source) *Router {
	gin.SetMode(cfg.Server.Mode)

	engine := gin.New()

	// Create repositories
	stockRepo := postgres.NewStockRepository(dbPool.Pool)
	orderRepo := postgres.NewOrderRepository(dbPool.Pool)

	// Create services
	tradingSvc := tradingservice.NewService(orderRepo, stockRepo, quotes)
	catalogSvc := catalogservice.NewService(stockRepo)

	router := &Router{
		engine:           engine,
		config:           cfg,
		dbPool:           dbPool,
		healthHandler:    handlers.NewHealthHandler(dbPool),
		orderHandler:     handlers.NewOrderHandler(tradingSvc),
		portfolioHandler: handlers.NewPortfolioHandler(tradingSvc),
		stockHandler:     handlers.NewStockHandler(catalogSvc),
	}

	router.setupMiddlewares()
	router.setupRoutes()

	return router
}

// setupMiddlewares configures all global middlewares
func (r *Router) setupMiddlewares() {
	// Recovery middleware (must be first)
	r.engine.Use(middleware.Recovery())

	// Request ID middleware
	r.engine.Use(middleware.RequestID())

	// Logging middleware
	accessLogger := logger.NewAccessLogger(
		r.config.Logging.FilePath,
		r.config.Logging.RotationSize,
		r.config.Logging.RetentionDays,
	)
	r.engine.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: &accessLogger,
		SkipPaths:    []string{"/health", "/health/ready"}, // Skip health checks to reduce noise
	}))

	// CORS middleware
	if r.config.Server.Mode == "debug" {
		r.engine.Use(middleware.CORS(middleware.DevelopmentCORSConfig()))
	} else {
		r.engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	}
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Health checks (no /api prefix)
	r.engine.GET("/health", r.healthHandler.Health)
	r.engine.GET("/health/ready", r.healthHandler.Ready)

	// API routes
	api := r.engine.Group("/api")
	{
		// Orders API
		orders := api.Group("/orders")
		{
			orders.POST("", r.orderHandler.Place)
			orders.GET("", r.orderHandler.List)
			orders.GET("/:id", r.orderHandler.Get)
		}

		// Portfolio API
		api.GET("/portfolio", r.portfolioHandler.Portfolio)
		api.GET("/holdings/:symbol", r.portfolioHandler.Holdings)

		// Stocks API
		stocks := api.Group("/stocks")
		{
			stocks.POST("", r.stockHandler.Create)
			stocks.GET("", r.stockHandler.List)
			stocks.GET("/symbol/:symbol", r.stockHandler.GetBySymbol)
			stocks.GET("/:id", r.stockHandler.Get)
			stocks.PUT("/:id", r.stockHandler.Update)
			stocks.DELETE("/:id", r.stockHandler.Delete)
		}
	}
}

// Engine returns the underlying Gin engine
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
