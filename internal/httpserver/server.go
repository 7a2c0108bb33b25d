package httpserver

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/contentpm/growth-pm-agent/internal/config"
	"github.com/contentpm/growth-pm-agent/internal/handlers"
	"github.com/contentpm/growth-pm-agent/internal/metrics"
	"github.com/contentpm/growth-pm-agent/internal/visitor"
	"github.com/contentpm/growth-pm-agent/internal/web"
)

// NewRouter wires the web UI, the JSON summary API and the ops endpoints.
// Public: /health, /ready
// Visitor-tracked: everything else
func NewRouter(cfg config.Config, agent handlers.Generator, st *metrics.Store) (*gin.Engine, error) {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the metrics store location is writable.
	r.GET("/ready", func(c *gin.Context) {
		if err := st.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	// Everything user-facing goes through the anonymous-visitor cookie.
	tracked := r.Group("/")
	tracked.Use(visitor.Middleware(st))

	handlers.RegisterGeneratorRoutes(tracked, agent, st)
	handlers.RegisterDashboardRoutes(tracked, st)

	return r, nil
}
