package realtime

import (
	"time"

	"github.com/google/uuid"
)

// Action is the kind of change that happened to a row
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Tables that emit change events
const (
	TableTrips         = "trips"
	TableTripMembers   = "trip_members"
	TableItineraryDays = "itinerary_days"
	TableActivities    = "activities"
	TableExpenses      = "expenses"
	TableExpenseSplits = "expense_splits"
)

// Event is one change notification for a trip. Subscribers get no row data,
// only enough to know a reload is needed.
type Event struct {
	ID     uuid.UUID `json:"id"`
	TripID string    `json:"trip_id"`
	Table  string    `json:"table"`
	Action Action    `json:"action"`
	Origin string    `json:"origin,omitempty"` // instance that produced the event
	At     time.Time `json:"at"`
}

// NewEvent builds a change event for a trip
func NewEvent(tripID, table string, action Action) Event {
	return Event{
		ID:     uuid.New(),
		TripID: tripID,
		Table:  table,
		Action: action,
		At:     time.Now(),
	}
}

// Publisher is the mutation-side interface services depend on
type Publisher interface {
	Publish(e Event)
}

// NopPublisher discards events; used by tests and as a default
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
