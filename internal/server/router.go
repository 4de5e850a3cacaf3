// Package server assembles the HTTP router from the services and handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"posfinance/internal/actor"
	"posfinance/internal/config"
	_ "posfinance/internal/docs" // registers the swagger descriptor
	"posfinance/internal/handlers"
	"posfinance/internal/middleware"
	"posfinance/internal/services"
	"posfinance/internal/validator"
)

// NewRouter wires services and handlers over db and returns the gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	validator.Register()

	auditService := services.NewAuditService(db)
	categoryService := services.NewCategoryService(db)
	budgetService := services.NewBudgetService(db)
	reportService := services.NewReportService(db)

	categoryHandler := handlers.NewCategoryHandler(categoryService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Machine clients read reports with an API key.
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.GET("/reports/comparative", reportHandler.GetComparative)
	pipeline.GET("/reports/:kind", reportHandler.GetReport)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/tree", categoryHandler.GetCategoryTree)
	categories.GET("/:id", categoryHandler.GetCategory)
	categoriesWrite := categories.Group("", middleware.RequirePermission(actor.PermCategoriesWrite))
	categoriesWrite.POST("", categoryHandler.CreateCategory)
	categoriesWrite.POST("/bulk", categoryHandler.BulkAction)
	categoriesWrite.PUT("/:id", categoryHandler.UpdateCategory)
	categoriesWrite.DELETE("/:id", categoryHandler.DeleteCategory)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.GET("/:id/transactions", budgetHandler.ListTransactions)
	budgets.GET("/:id/reconciliation", budgetHandler.GetReconciliation)
	budgets.GET("/:id/audit", budgetHandler.GetAuditTrail)
	budgetsWrite := budgets.Group("", middleware.RequirePermission(actor.PermBudgetsWrite))
	budgetsWrite.POST("", budgetHandler.CreateBudget)
	budgetsWrite.PATCH("/:id/status", budgetHandler.UpdateBudgetStatus)
	budgetsWrite.POST("/:id/items", budgetHandler.AddItem)
	budgetsWrite.PUT("/:id/items/:itemId", budgetHandler.UpdateItem)
	budgetsWrite.PUT("/:id/items/:itemId/actual", budgetHandler.SetItemActualAmount)
	budgetsWrite.POST("/:id/transactions", budgetHandler.RecordTransaction)

	reports := protected.Group("/reports", middleware.RequirePermission(actor.PermReportsRead))
	reports.GET("/comparative", reportHandler.GetComparative)
	reports.GET("/:kind", reportHandler.GetReport)

	return router
}
