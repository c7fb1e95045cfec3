package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
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

	// CORS middleware; widget feeds are embedded on third-party sites
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-Account-ID")

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
	// Public query endpoints
	public := r.Group("/api")
	public.Use(accessGateMiddleware(handler.profiles))
	{
		public.GET("/articles", handler.GetArticles)
		public.GET("/widgets/:slug", handler.GetWidget)
	}

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)
	r.GET("/stats", handler.GetStats)

	// Admin endpoints (conditionally enabled with authentication)
	if apiAccessKey != "" {
		admin := r.Group("/admin")
		admin.Use(authMiddleware(apiAccessKey))
		{
			admin.GET("/widgets", handler.APIListWidgets)
			admin.POST("/widgets/reload", handler.APIReloadWidgets)
			admin.GET("/profiles/:id", handler.APIGetProfile)
			admin.POST("/profiles/:id/renew", handler.APIRenewPlan)
		}
		slog.Info("Admin endpoints enabled with authentication")
	} else {
		slog.Info("Admin endpoints disabled (API_ACCESS_KEY not set)")
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		endpoints := map[string]string{
			"articles": "/api/articles",
			"widget":   "/api/widgets/<slug>",
			"health":   "/health",
			"stats":    "/stats",
		}

		if apiAccessKey != "" {
			endpoints["admin_widgets"] = "/admin/widgets (requires X-API-Key header)"
			endpoints["admin_reload"] = "/admin/widgets/reload (POST, requires X-API-Key header)"
			endpoints["admin_profiles"] = "/admin/profiles/<id> (requires X-API-Key header)"
			endpoints["admin_renew"] = "/admin/profiles/<id>/renew (POST, requires X-API-Key header)"
		}

		c.JSON(200, gin.H{
			"service":     "Sportwire",
			"description": "Filtered sports-governance news feeds with embeddable widgets",
			"endpoints":   endpoints,
			"admin_status": map[string]interface{}{
				"enabled":       apiAccessKey != "",
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// accessGateMiddleware enforces the subscription gate on public query
// endpoints. The gate only applies when a profile store is configured
// and the caller identifies an account; identity itself is handled
// upstream.
func accessGateMiddleware(profiles ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if profiles == nil {
			c.Next()
			return
		}

		accountID := c.GetHeader("X-Account-ID")
		if accountID == "" {
			c.Next()
			return
		}

		profile, err := profiles.EnsureProfile(c.Request.Context(), accountID, "")
		if err != nil {
			slog.Error("Access gate lookup failed", "account", accountID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "access check failed"})
			c.Abort()
			return
		}

		if !profile.HasActiveAccess(time.Now()) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "subscription inactive",
				"message": "The account's plan is inactive or expired",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// authMiddleware creates authentication middleware for admin endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get API key from X-API-Key header
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
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
