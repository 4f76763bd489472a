package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/handlers"
	"papertrade/internal/ledger"
	"papertrade/internal/logger"
	"papertrade/internal/market"
	"papertrade/internal/middleware"
	"papertrade/internal/services"
	"papertrade/internal/store"
	"papertrade/internal/validator"

	_ "papertrade/internal/docs" // Import swagger docs
)

// @title           Papertrade API
// @version         1.0
// @description     Papertrade is a simulated stock-trading platform: virtual cash, synthetic market quotes, and a full portfolio ledger with brokerage and P&L tracking.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Ledger store: in-memory for ephemeral runs, relational otherwise.
	var ledgerStore ledger.Store
	var db *database.Manager
	if appConfig.DBDriver == "memory" {
		ledgerStore = store.NewMemory()
		log.Warn("Running with the in-memory ledger store; portfolios will not survive a restart")
	} else {
		db, err = database.NewManager(appConfig)
		if err != nil {
			return fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to run database migrations: %w", err)
		}
		ledgerStore = store.NewGorm(db.DB())
	}

	// Market data feed
	synthetic := market.NewSynthetic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go synthetic.Run(ctx, appConfig.MarketTick)

	var feed market.Feed = synthetic
	if appConfig.MarketProvider == "alphavantage" && appConfig.AlphaVantageKey != "" {
		feed = market.NewLive(market.NewAlphaVantage(appConfig.AlphaVantageKey), synthetic)
		log.Info("Using Alpha Vantage live quotes with synthetic fallback")
	}

	// Services and handlers. The memory store still needs a database for
	// user accounts, so auth requires a relational driver.
	if db == nil {
		db, err = database.NewManager(&config.Config{DBDriver: "sqlite", SQLitePath: appConfig.SQLitePath})
		if err != nil {
			return fmt.Errorf("failed to open user database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate user database: %w", err)
		}
	}
	userService := services.NewUserService(db.DB())
	tradingService := services.NewTradingService(ledgerStore, feed)

	authHandler := handlers.NewAuthHandler(userService)
	tradingHandler := handlers.NewTradingHandler(tradingService)
	marketHandler := handlers.NewMarketHandler(feed)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	quotes := v1.Group("/market")
	quotes.GET("/quotes", marketHandler.GetQuotes)
	quotes.GET("/quotes/:symbol", marketHandler.GetQuote)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	protected.GET("/portfolio", tradingHandler.GetPortfolio)
	protected.POST("/portfolio/reset", tradingHandler.ResetPortfolio)
	protected.POST("/portfolio/refresh", tradingHandler.RefreshPortfolio)
	protected.POST("/orders", tradingHandler.PlaceOrder)
	protected.GET("/orders", tradingHandler.GetOrders)

	log.Infof("Starting papertrade server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
