package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentpm/growth-pm-agent/internal/logger"
	"github.com/contentpm/growth-pm-agent/internal/metrics"
)

// recentEventLimit caps the event log shown on the dashboard.
const recentEventLimit = 50

// RegisterDashboardRoutes registers the metrics-facing pages.
//
// GET /dashboard        - summary cards, breakdowns, recent-event log
// GET /dashboard/export - the raw store CSV, unmodified
// GET /api/summary      - the summary as JSON
// GET /about            - static documentation page
func RegisterDashboardRoutes(r gin.IRoutes, st *metrics.Store) {
	r.GET("/dashboard", func(c *gin.Context) {
		sum, err := st.Compute(time.Now().UTC())
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
				"Message": "Could not read the metrics store.",
				"Detail":  err.Error(),
			})
			return
		}

		events, err := st.ReadAll()
		if err != nil {
			c.HTML(http.StatusInternalServerError, "error.tmpl", gin.H{
				"Message": "Could not read the metrics store.",
				"Detail":  err.Error(),
			})
			return
		}

		// Newest first, capped.
		recent := make([]metrics.Event, 0, recentEventLimit)
		for i := len(events) - 1; i >= 0 && len(recent) < recentEventLimit; i-- {
			recent = append(recent, events[i])
		}

		c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
			"Summary": sum,
			"Recent":  recent,
			"Empty":   len(events) == 0,
		})
	})

	r.GET("/dashboard/export", func(c *gin.Context) {
		filename := fmt.Sprintf("metrics_%s.csv", time.Now().UTC().Format("20060102"))
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := st.Export(c.Writer); err != nil {
			// Headers are already out; all we can do is log.
			logger.Log.WithError(err).Error("csv export failed")
		}
	})

	r.GET("/api/summary", func(c *gin.Context) {
		sum, err := st.Compute(time.Now().UTC())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "metrics read failed"})
			return
		}
		c.JSON(http.StatusOK, sum)
	})

	r.GET("/about", func(c *gin.Context) {
		c.HTML(http.StatusOK, "about.tmpl", nil)
	})
}
