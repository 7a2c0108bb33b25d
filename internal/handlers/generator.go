package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contentpm/growth-pm-agent/internal/logger"
	"github.com/contentpm/growth-pm-agent/internal/metrics"
	"github.com/contentpm/growth-pm-agent/internal/models"
	"github.com/contentpm/growth-pm-agent/internal/strategy"
	"github.com/contentpm/growth-pm-agent/internal/visitor"
)

// Generator is the strategy-producing dependency of the web handlers.
// Satisfied by *strategy.Agent; tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, req strategy.Request) (strategy.Result, error)
}

// formData is what the generator form template needs to render.
func formData(fieldError string, form models.StrategyForm) gin.H {
	return gin.H{
		"ContentTypes": strategy.ContentTypes,
		"MinTopics":    strategy.MinTopics,
		"MaxTopics":    strategy.MaxTopics,
		"Form":         form,
		"FieldError":   fieldError,
	}
}

// recordBestEffort appends a metric event and only logs on failure.
// Telemetry must never block the user's primary action.
func recordBestEffort(st *metrics.Store, userID string, t metrics.EventType, value float64) {
	ev := metrics.Event{
		UserID:    userID,
		Type:      t,
		Timestamp: time.Now().UTC(),
		Value:     value,
	}
	if err := st.Record(ev); err != nil {
		logger.Log.WithError(err).Warnf("recording %s failed", t)
	}
}

// RegisterGeneratorRoutes registers the strategy-generation flow.
//
// GET  /          - the generator form
// POST /strategy  - validate, record metrics, call the API, render result
// POST /feedback  - 1-5 star rating
func RegisterGeneratorRoutes(r gin.IRoutes, agent Generator, st *metrics.Store) {
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.tmpl", formData("", models.StrategyForm{NumTopics: strategy.DefaultTopics}))
	})

	r.POST("/strategy", func(c *gin.Context) {
		var form models.StrategyForm
		if err := c.ShouldBind(&form); err != nil {
			c.HTML(http.StatusBadRequest, "index.tmpl", formData("invalid form submission", form))
			return
		}

		req := form.ToRequest()
		if err := req.Validate(); err != nil {
			c.HTML(http.StatusBadRequest, "index.tmpl", formData(err.Error(), form))
			return
		}

		userID := visitor.ID(c)

		// Activation fires once per visitor, on first core-feature use.
		// RecordOnce checks and appends atomically, so concurrent
		// submissions cannot record it twice.
		activation := metrics.Event{
			UserID:    userID,
			Type:      metrics.EventActivation,
			Timestamp: time.Now().UTC(),
			Value:     1,
		}
		if _, err := st.RecordOnce(activation); err != nil {
			logger.Log.WithError(err).Warn("recording activation failed")
		}
		recordBestEffort(st, userID, metrics.EventStrategyCreated, 1)

		result, err := agent.Generate(c.Request.Context(), req)
		if err != nil {
			var genErr *strategy.GenerationError
			if !errors.As(err, &genErr) {
				genErr = &strategy.GenerationError{Kind: strategy.ErrAPIUnavailable, Cause: err}
			}
			logger.Log.WithError(err).Error("strategy generation failed")
			c.HTML(statusForKind(genErr.Kind), "error.tmpl", gin.H{
				"Message": genErr.Message(),
				"Detail":  genErr.Error(),
			})
			return
		}

		c.HTML(http.StatusOK, "result.tmpl", gin.H{
			"Request": req,
			"Result":  result,
			// When parsing found nothing, the template falls back to Raw.
			"ShowRaw": result.Empty(),
		})
	})

	r.POST("/feedback", func(c *gin.Context) {
		var form models.FeedbackForm
		if err := c.ShouldBind(&form); err != nil || form.Rating < 1 || form.Rating > 5 {
			c.HTML(http.StatusBadRequest, "error.tmpl", gin.H{
				"Message": "Rating must be between 1 and 5 stars.",
				"Detail":  "invalid rating",
			})
			return
		}

		recordBestEffort(st, visitor.ID(c), metrics.EventRatingGiven, float64(form.Rating))

		c.HTML(http.StatusOK, "thanks.tmpl", gin.H{"Rating": form.Rating})
	})
}

// statusForKind maps a generation failure onto an HTTP status for the
// rendered error page.
func statusForKind(kind strategy.ErrorKind) int {
	switch kind {
	case strategy.ErrInvalidRequest:
		return http.StatusBadRequest
	case strategy.ErrAuthFailed:
		return http.StatusInternalServerError
	case strategy.ErrRateLimited:
		return http.StatusTooManyRequests
	case strategy.ErrTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
