package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
	"fintrack/internal/validator"
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

	// Register custom request validators
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Account notifications go through AMQP when a broker is configured.
	notifier := services.NewNoopNotifier()
	if appConfig.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(appConfig.AMQPURL, appConfig.AMQPExchange, appConfig.AMQPQueue)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		defer amqpClient.Close()
		notifier = services.NewAMQPNotifier(amqpClient)
	} else {
		log.Warnw("AMQP_URL not set, account notifications disabled")
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db, notifier)
	budgetService := services.NewBudgetService(db)
	expenseService := services.NewExpenseService(db)
	suggester := services.NewGeminiSuggester(appConfig.GeminiAPIKey)
	analyticsService := services.NewAnalyticsService(db, suggester)
	reportService := services.NewReportService(db)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, analyticsService)
	financialHandler := handlers.NewFinancialHandler(reportService)

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

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	users := api.Group("/users")
	users.POST("", userHandler.Register)
	users.POST("/login", userHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User routes
	protectedUsers := protected.Group("/users")
	protectedUsers.GET("/me", userHandler.Me)
	protectedUsers.GET("", userHandler.GetUsers)
	protectedUsers.GET("/:id", userHandler.GetUser)
	protectedUsers.POST("/password", userHandler.UpdatePassword)
	protectedUsers.PATCH("/:id/block", userHandler.SetBlocked)
	protectedUsers.DELETE("/:id", userHandler.DeleteUser)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.POST("/range", budgetHandler.GetBudgetsByRange)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.POST("/by-category", expenseHandler.SumByCategory)
	expenses.POST("/category-range", expenseHandler.ExpensesByCategoryAndRange)
	expenses.POST("/trends", expenseHandler.SpendingTrends)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	// Report routes
	financial := protected.Group("/financial")
	financial.POST("/generate-financial-report", financialHandler.GenerateFinancialReport)

	log.Infof("Starting fintrack backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
