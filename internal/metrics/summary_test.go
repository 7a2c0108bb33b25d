package metrics

import (
	"testing"
	"time"
)

////////////////////////////////////////////////////////////////////////////////
// SUMMARY AGGREGATION TESTS
//
// Summarize is pure over a slice of events, so most cases run without a
// file. Compute is checked once against a real store at the end.
////////////////////////////////////////////////////////////////////////////////

// asOf is far enough in the future that no fixture event is filtered
// unless a test wants it to be.
var asOf = time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

func event(user string, t EventType, day int, value float64) Event {
	return Event{UserID: user, Type: t, Timestamp: at(day), Value: value}
}

func TestSummarizeEmptyHistory(t *testing.T) {
	sum := Summarize(nil, asOf)

	if sum.TotalUsers != 0 || sum.ActivatedUsers != 0 {
		t.Errorf("user counts = %d/%d, want 0/0", sum.ActivatedUsers, sum.TotalUsers)
	}
	if sum.ActivationRate != 0 || sum.OneWeekRetention != 0 {
		t.Error("rates should be 0 on an empty history")
	}
	if sum.StrategiesCreated != 0 {
		t.Errorf("engagement = %d, want 0", sum.StrategiesCreated)
	}
	if sum.RatingCount != 0 || sum.AvgSatisfaction != 0 {
		t.Error("satisfaction should report no data on an empty history")
	}
}

func TestSummarizeSingleActivatedUser(t *testing.T) {
	events := []Event{
		event("u1", EventActivation, 0, 1),
		event("u1", EventRatingGiven, 0, 4),
	}

	sum := Summarize(events, asOf)

	if sum.ActivationRate != 1.0 {
		t.Errorf("activation rate = %v, want 1.0", sum.ActivationRate)
	}
	if sum.AvgSatisfaction != 4.0 {
		t.Errorf("avg satisfaction = %v, want 4.0", sum.AvgSatisfaction)
	}
	if sum.RatingCount != 1 {
		t.Errorf("rating count = %d, want 1", sum.RatingCount)
	}
}

func TestSummarizeActivationRate(t *testing.T) {
	// u1 activated; u2 has events but never an activation.
	events := []Event{
		event("u1", EventActivation, 0, 1),
		event("u1", EventStrategyCreated, 0, 1),
		event("u2", EventReturnVisit, 1, 1),
	}

	sum := Summarize(events, asOf)

	if sum.TotalUsers != 2 || sum.ActivatedUsers != 1 {
		t.Fatalf("users = %d/%d, want 1/2", sum.ActivatedUsers, sum.TotalUsers)
	}
	if sum.ActivationRate != 0.5 {
		t.Errorf("activation rate = %v, want 0.5", sum.ActivationRate)
	}
}

func TestSummarizeOneWeekRetention(t *testing.T) {
	events := []Event{
		// u1: day 0 and day 8 → retained.
		event("u1", EventActivation, 0, 1),
		event("u1", EventStrategyCreated, 8, 1),
		// u2: only day 0 → not retained, not an error.
		event("u2", EventActivation, 0, 1),
		// u3: day 0 and day 3 → span under a week, not retained.
		event("u3", EventActivation, 0, 1),
		event("u3", EventReturnVisit, 3, 1),
	}

	sum := Summarize(events, asOf)

	if sum.RetainedUsers != 1 {
		t.Fatalf("retained = %d, want 1", sum.RetainedUsers)
	}
	if want := 1.0 / 3.0; sum.OneWeekRetention != want {
		t.Errorf("retention = %v, want %v", sum.OneWeekRetention, want)
	}
}

func TestSummarizeEngagement(t *testing.T) {
	events := []Event{
		event("u1", EventStrategyCreated, 0, 1),
		event("u1", EventStrategyCreated, 0, 1),
		event("u2", EventStrategyCreated, 1, 1),
	}

	sum := Summarize(events, asOf)

	if sum.StrategiesCreated != 3 {
		t.Errorf("engagement = %d, want 3", sum.StrategiesCreated)
	}
	if sum.StrategiesPerUser != 1.5 {
		t.Errorf("per-user = %v, want 1.5", sum.StrategiesPerUser)
	}

	if len(sum.StrategiesPerDay) != 2 {
		t.Fatalf("got %d day buckets, want 2", len(sum.StrategiesPerDay))
	}
	if sum.StrategiesPerDay[0].Count != 2 || sum.StrategiesPerDay[1].Count != 1 {
		t.Errorf("day buckets = %+v", sum.StrategiesPerDay)
	}
	if sum.StrategiesPerDay[0].Date >= sum.StrategiesPerDay[1].Date {
		t.Error("day buckets not in ascending date order")
	}
}

func TestSummarizeSatisfaction(t *testing.T) {
	events := []Event{
		event("u1", EventRatingGiven, 0, 5),
		event("u2", EventRatingGiven, 0, 3),
		event("u3", EventRatingGiven, 0, 4),
	}

	sum := Summarize(events, asOf)

	if sum.RatingCount != 3 {
		t.Fatalf("rating count = %d, want 3", sum.RatingCount)
	}
	if sum.AvgSatisfaction != 4.0 {
		t.Errorf("avg = %v, want 4.0", sum.AvgSatisfaction)
	}
	if sum.RatingCounts != [5]int{0, 0, 1, 1, 1} {
		t.Errorf("distribution = %v", sum.RatingCounts)
	}
}

func TestSummarizeAsOfFiltering(t *testing.T) {
	events := []Event{
		event("u1", EventActivation, 0, 1),
		event("u1", EventStrategyCreated, 10, 1), // after the cutoff
	}

	sum := Summarize(events, at(5))

	if sum.StrategiesCreated != 0 {
		t.Errorf("engagement = %d, want 0 (event after asOf)", sum.StrategiesCreated)
	}
	if sum.RetainedUsers != 0 {
		t.Error("retention must not count the filtered event")
	}
}

func TestComputeReadsStore(t *testing.T) {
	st := newTestStore(t)

	mustRecord(t, st, event("u1", EventActivation, 0, 1))
	mustRecord(t, st, event("u1", EventStrategyCreated, 0, 1))
	mustRecord(t, st, event("u1", EventRatingGiven, 0, 4))

	sum, err := st.Compute(asOf)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if sum.ActivationRate != 1.0 || sum.StrategiesCreated != 1 || sum.AvgSatisfaction != 4.0 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestComputeMissingStore(t *testing.T) {
	st := newTestStore(t)

	sum, err := st.Compute(asOf)
	if err != nil {
		t.Fatalf("compute on a missing store failed: %v", err)
	}
	if sum.TotalUsers != 0 {
		t.Errorf("summary = %+v, want zeros", sum)
	}
}
