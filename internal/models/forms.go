package models

import (
	"strings"

	"github.com/contentpm/growth-pm-agent/internal/strategy"
)

// StrategyForm is the POST /strategy form payload.
// Keywords, content_type and num_topics are the "advanced" optional fields;
// num_topics defaults when the browser sends nothing.
type StrategyForm struct {
	BusinessType   string `form:"business_type"`
	Industry       string `form:"industry"`
	TargetAudience string `form:"target_audience"`
	ContentGoals   string `form:"content_goals"`
	Keywords       string `form:"keywords"`
	ContentType    string `form:"content_type"`
	NumTopics      int    `form:"num_topics"`
}

// ToRequest converts the bound form into a generation request, applying
// the form defaults. Validation happens on the request, not here.
func (f StrategyForm) ToRequest() strategy.Request {
	req := strategy.Request{
		BusinessType:   strings.TrimSpace(f.BusinessType),
		Industry:       strings.TrimSpace(f.Industry),
		TargetAudience: strings.TrimSpace(f.TargetAudience),
		ContentGoals:   strings.TrimSpace(f.ContentGoals),
		Keywords:       strings.TrimSpace(f.Keywords),
		ContentType:    f.ContentType,
		TopicCount:     f.NumTopics,
	}
	if req.ContentType == "" {
		req.ContentType = "Mixed"
	}
	if req.TopicCount == 0 {
		req.TopicCount = strategy.DefaultTopics
	}
	return req
}

// FeedbackForm is the POST /feedback form payload (1-5 stars).
type FeedbackForm struct {
	Rating int `form:"rating"`
}
