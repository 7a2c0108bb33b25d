package visitor

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/contentpm/growth-pm-agent/internal/logger"
	"github.com/contentpm/growth-pm-agent/internal/metrics"
)

// visitorCtxKey is the Gin context key used to store the visitor ID.
const visitorCtxKey = "visitor_id"

const (
	visitorCookie = "gpa_visitor"
	sessionCookie = "gpa_session"

	visitorTTL = 365 * 24 * time.Hour
)

// Middleware assigns every request an anonymous visitor identity via a
// persistent cookie, minting a fresh UUID on first sight. When a known
// visitor shows up without the session cookie, that is a new browser
// session and one return_visit event is recorded, best-effort.
func Middleware(st *metrics.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		known := err == nil && id != ""
		if !known {
			id = uuid.New().String()
			c.SetCookie(visitorCookie, id, int(visitorTTL.Seconds()), "/", "", false, true)
		}

		if _, err := c.Cookie(sessionCookie); err != nil {
			// Session cookie: MaxAge 0 makes it expire with the browser.
			c.SetCookie(sessionCookie, "1", 0, "/", "", false, true)
			if known {
				ev := metrics.Event{
					UserID:    id,
					Type:      metrics.EventReturnVisit,
					Timestamp: time.Now().UTC(),
					Value:     1,
				}
				if err := st.Record(ev); err != nil {
					logger.Log.WithError(err).Warn("recording return_visit failed")
				}
			}
		}

		c.Set(visitorCtxKey, id)
		c.Next()
	}
}

// ID returns the visitor ID from the request context.
func ID(c *gin.Context) string {
	v, _ := c.Get(visitorCtxKey)
	s, _ := v.(string)
	return s
}
