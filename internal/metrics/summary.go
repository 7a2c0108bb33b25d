package metrics

import (
	"sort"
	"time"
)

// retentionSpan is the elapsed interval after which a returning user
// counts as retained.
const retentionSpan = 7 * 24 * time.Hour

// DayCount is one entry of the strategies-per-day breakdown.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int    `json:"count"`
}

// Summary holds the dashboard statistics, recomputed from the full event
// history on every call. Rates are fractions in [0,1]; AvgSatisfaction is
// meaningful only when RatingCount > 0.
type Summary struct {
	TotalUsers        int        `json:"total_users"`
	ActivatedUsers    int        `json:"activated_users"`
	ActivationRate    float64    `json:"activation_rate"`
	StrategiesCreated int        `json:"strategies_created"`
	StrategiesPerUser float64    `json:"strategies_per_user"`
	RetainedUsers     int        `json:"retained_users"`
	OneWeekRetention  float64    `json:"one_week_retention"`
	RatingCount       int        `json:"rating_count"`
	AvgSatisfaction   float64    `json:"avg_satisfaction"`
	StrategiesPerDay  []DayCount `json:"strategies_per_day"`
	RatingCounts      [5]int     `json:"rating_counts"` // index 0 = 1 star
}

// Summarize aggregates events with timestamp <= asOf. An empty history
// yields all zeros, never an error.
func Summarize(events []Event, asOf time.Time) Summary {
	var sum Summary

	type userSpan struct {
		first, last time.Time
		activated   bool
	}
	users := map[string]*userSpan{}
	perDay := map[string]int{}
	var ratingTotal float64

	for _, e := range events {
		if e.Timestamp.After(asOf) {
			continue
		}

		u, ok := users[e.UserID]
		if !ok {
			u = &userSpan{first: e.Timestamp, last: e.Timestamp}
			users[e.UserID] = u
		} else {
			if e.Timestamp.Before(u.first) {
				u.first = e.Timestamp
			}
			if e.Timestamp.After(u.last) {
				u.last = e.Timestamp
			}
		}

		switch e.Type {
		case EventActivation:
			u.activated = true
		case EventStrategyCreated:
			sum.StrategiesCreated++
			perDay[e.Timestamp.UTC().Format("2006-01-02")]++
		case EventRatingGiven:
			sum.RatingCount++
			ratingTotal += e.Value
			if star := int(e.Value); star >= 1 && star <= 5 {
				sum.RatingCounts[star-1]++
			}
		}
	}

	sum.TotalUsers = len(users)
	for _, u := range users {
		if u.activated {
			sum.ActivatedUsers++
		}
		if u.last.Sub(u.first) >= retentionSpan {
			sum.RetainedUsers++
		}
	}

	if sum.TotalUsers > 0 {
		sum.ActivationRate = float64(sum.ActivatedUsers) / float64(sum.TotalUsers)
		sum.OneWeekRetention = float64(sum.RetainedUsers) / float64(sum.TotalUsers)
		sum.StrategiesPerUser = float64(sum.StrategiesCreated) / float64(sum.TotalUsers)
	}
	if sum.RatingCount > 0 {
		sum.AvgSatisfaction = ratingTotal / float64(sum.RatingCount)
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)
	for _, d := range days {
		sum.StrategiesPerDay = append(sum.StrategiesPerDay, DayCount{Date: d, Count: perDay[d]})
	}

	return sum
}

// Compute reads the full history and summarizes it as of the given time.
func (s *Store) Compute(asOf time.Time) (Summary, error) {
	events, err := s.ReadAll()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(events, asOf), nil
}
