package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-hclog"

	"github.com/mantonx/cinebot/internal/api"
	"github.com/mantonx/cinebot/internal/config"
	"github.com/mantonx/cinebot/internal/metrics"
	"github.com/mantonx/cinebot/internal/middleware"
	"github.com/mantonx/cinebot/internal/modules/modulemanager"
)

// SetupRouter configures and returns the main router with every registered
// module's routes mounted.
func SetupRouter(cfg *config.Config, registry *modulemanager.ModuleRegistry, logger hclog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		api.ErrorMiddleware(),
		middleware.RequestLogger(logger),
		middleware.ErrorLogger(logger),
	)
	if cfg.Server.EnableCORS {
		r.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	}

	registry.RegisterRoutes(r)

	r.GET("/api/health", func(c *gin.Context) {
		modules := registry.HealthCheck(c.Request.Context())
		status := http.StatusOK
		overall := modulemanager.HealthStateHealthy
		for _, h := range modules {
			if h.Status == modulemanager.HealthStateUnhealthy {
				status = http.StatusServiceUnavailable
				overall = modulemanager.HealthStateUnhealthy
				break
			}
			if h.Status == modulemanager.HealthStateDegraded {
				overall = modulemanager.HealthStateDegraded
			}
		}
		c.JSON(status, gin.H{"status": overall, "modules": modules})
	})

	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// route discovery
	r.GET("/api", func(c *gin.Context) {
		routes := r.Routes()
		sort.Slice(routes, func(i, j int) bool {
			if routes[i].Path == routes[j].Path {
				return routes[i].Method < routes[j].Method
			}
			return routes[i].Path < routes[j].Path
		})
		out := make([]gin.H, 0, len(routes))
		for _, rt := range routes {
			out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
		}
		c.JSON(http.StatusOK, gin.H{"routes": out})
	})

	return r
}

// corsMiddleware answers preflight requests and sets the allow headers for
// permitted origins. "*" permits every origin.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	allowAll := false
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && set[origin]:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// NewHTTPServer wraps handler with the configured address and timeouts.
func NewHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
