package metrics

import (
	"fmt"
	"strconv"
	"time"
)

// EventType is the fixed vocabulary of tracked user actions.
type EventType string

const (
	EventActivation      EventType = "activation"
	EventStrategyCreated EventType = "strategy_created"
	EventRatingGiven     EventType = "rating_given"
	EventReturnVisit     EventType = "return_visit"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventActivation, EventStrategyCreated, EventRatingGiven, EventReturnVisit:
		return true
	}
	return false
}

// Event is one append-only usage record. Value is 1 for counter events
// and the star rating (1-5) for rating_given.
type Event struct {
	UserID    string
	Type      EventType
	Timestamp time.Time
	Value     float64
}

// csvHeader is the fixed column order of the store file.
const csvHeader = "user_id,event_type,timestamp,value"

// row renders the event as a CSV record in store column order.
func (e Event) row() []string {
	return []string{
		e.UserID,
		string(e.Type),
		e.Timestamp.UTC().Format(time.RFC3339),
		strconv.FormatFloat(e.Value, 'g', -1, 64),
	}
}

// eventFromRow parses one CSV record back into an Event.
func eventFromRow(record []string) (Event, error) {
	if len(record) < 4 {
		return Event{}, fmt.Errorf("short record: %d columns", len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[2])
	if err != nil {
		return Event{}, fmt.Errorf("bad timestamp %q: %w", record[2], err)
	}
	val, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return Event{}, fmt.Errorf("bad value %q: %w", record[3], err)
	}
	return Event{
		UserID:    record[0],
		Type:      EventType(record[1]),
		Timestamp: ts.UTC(),
		Value:     val,
	}, nil
}
