package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates the HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	api := r.Group("/api")
	{
		api.GET("/posts", handler.GetPosts)
		api.GET("/trending", handler.GetTrending)
		api.GET("/top-disruption", handler.GetTopDisruption)
		api.GET("/keywords", handler.GetKeywords)
		api.GET("/funding", handler.GetFundingRounds)
		api.GET("/funding/stats", handler.GetFundingStats)
	}

	// Mutating and admin endpoints require the shared secret when one
	// is configured; with no key set they stay open for local dev.
	protected := r.Group("/api")
	if apiAccessKey != "" {
		protected.Use(authMiddleware(apiAccessKey))
		log.Printf("Admin endpoints enabled with authentication")
	} else {
		log.Printf("API_ACCESS_KEY not set, admin endpoints are unauthenticated")
	}
	{
		protected.GET("/admin/stats", handler.GetAdminStats)
		protected.POST("/admin/refresh", handler.Refresh)
		protected.GET("/cron/refresh", handler.Refresh)
		protected.POST("/funding/refresh", handler.RefreshFunding)
	}

	r.GET("/health", handler.GetHealth)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "AI Disruption Tracker",
			"version":     handler.version,
			"description": "AI industry news aggregator with classification, deduplication, and a 24h rolling window",
			"endpoints": map[string]string{
				"posts":          "/api/posts?type=social|news&limit=&offset=",
				"trending":       "/api/trending",
				"top_disruption": "/api/top-disruption",
				"keywords":       "/api/keywords",
				"funding":        "/api/funding",
				"funding_stats":  "/api/funding/stats",
				"admin_stats":    "/api/admin/stats (requires X-API-Key header)",
				"refresh":        "/api/admin/refresh (POST, requires X-API-Key header)",
				"health":         "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
