// Package server assembles the HTTP router of the API.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "finanzas/internal/docs" // Import swagger docs
	"finanzas/internal/handlers"
	"finanzas/internal/metrics"
	"finanzas/internal/middleware"
	"finanzas/internal/services"
)

// Deps are the services and settings the router is built from.
type Deps struct {
	Budget    services.BudgetServicer
	Snapshots services.SnapshotServicer
	Audit     services.AuditServicer
	Metrics   *metrics.Metrics

	JWTSecret string
	JWTIssuer string
}

// NewRouter registers every route on a new gin engine.
func NewRouter(d Deps) *gin.Engine {
	budgetHandler := handlers.NewBudgetHandler(d.Budget, d.Audit)
	snapshotHandler := handlers.NewSnapshotHandler(d.Snapshots)
	auditHandler := handlers.NewAuditHandler(d.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

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

	if d.Metrics != nil {
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.Identity(d.JWTSecret, d.JWTIssuer))

	protected.GET("/state", budgetHandler.GetState)
	protected.GET("/dashboard", budgetHandler.GetDashboard)
	protected.PUT("/period", budgetHandler.SetPeriod)
	protected.PUT("/salary", budgetHandler.SetSalary)
	protected.DELETE("/session", budgetHandler.EndSession)

	buckets := protected.Group("/buckets")
	buckets.POST("", budgetHandler.CreateBucket)
	buckets.PUT("/:id", budgetHandler.UpdateBucket)
	buckets.PATCH("/:id/appearance", budgetHandler.UpdateBucketAppearance)
	buckets.DELETE("/:id", budgetHandler.DeleteBucket)

	amounts := protected.Group("/amounts")
	amounts.PUT("/:partition", budgetHandler.SetRecordedAmount)
	amounts.POST("/prune", budgetHandler.PruneOrphanedAmounts)

	extras := protected.Group("/extras")
	extras.GET("/:list", budgetHandler.ListExtras)
	extras.POST("/:list", budgetHandler.AddExtra)
	extras.PUT("/:list/:index", budgetHandler.UpdateExtra)
	extras.DELETE("/:list/:index", budgetHandler.RemoveExtra)

	periods := protected.Group("/periods")
	periods.GET("", snapshotHandler.ListPeriods)
	periods.GET("/:period", snapshotHandler.GetSnapshot)

	protected.GET("/audit-logs", auditHandler.ListAuditLogs)

	return router
}
