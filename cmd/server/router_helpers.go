package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lendhub.backend/internal/interfaces/http/handlers"
)

// applyCORSMiddleware echoes the request origin and answers preflight
func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, Idempotency-Key, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerOpsRoutes registers the operational endpoints outside /api/v1
func registerOpsRoutes(r *gin.Engine, health *handlers.HealthHandler) {
	r.GET("/health", health.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
