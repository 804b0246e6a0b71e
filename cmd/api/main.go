package main

import (
	"fmt"
	"net/http"
	"os"

	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/handlers"
	"tally/internal/logger"
	"tally/internal/middleware"
	"tally/internal/services"
	"tally/internal/validator"

	"github.com/gin-gonic/gin"
)

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

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	importService := services.NewImportService(db)
	reconcileService := services.NewReconcileService(db)
	transactionService := services.NewTransactionService(db)
	budgetService := services.NewBudgetService(db)
	accountService := services.NewAccountService(db)
	recurringService := services.NewRecurringService(db)

	// Initialize handlers
	importHandler := handlers.NewImportHandler(importService, reconcileService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, transactionService)
	accountHandler := handlers.NewAccountHandler(accountService)
	recurringHandler := handlers.NewRecurringHandler(recurringService, appConfig.RecurrenceMonths)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Import
	v1.POST("/import", importHandler.Import)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("", transactionHandler.List)
	transactions.GET("/options", transactionHandler.Options)
	transactions.GET("/overview", transactionHandler.Overview)
	transactions.GET("/statistics", transactionHandler.Statistics)

	// Recurring-expense prediction
	v1.GET("/recurring", recurringHandler.Predict)

	// Budget routes
	budgets := v1.Group("/budgets")
	budgets.GET("", budgetHandler.GetTargets)
	budgets.GET("/metrics", budgetHandler.GetMetrics)
	budgets.PUT("/:id", budgetHandler.UpdateTarget)

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.List)
	accounts.PUT("/:id", accountHandler.Annotate)

	log.Infof("Starting tally backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
