package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/credibility/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, tel *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(tel.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		analyze := v1.Group("/analyze")
		{
			analyze.POST("", handler.Analyze)        // POST /api/v1/analyze
			analyze.POST("/url", handler.AnalyzeURL) // POST /api/v1/analyze/url
		}

		v1.GET("/config", handler.GetConfig)          // GET /api/v1/config
		v1.PUT("/weights", handler.UpdateWeights)     // PUT /api/v1/weights
		v1.GET("/sources/:domain", handler.GetSource) // GET /api/v1/sources/:domain
		v1.GET("/history", handler.ListHistory)       // GET /api/v1/history
		v1.GET("/stats", handler.GetStats)            // GET /api/v1/stats
	}
}
