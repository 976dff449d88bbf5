package itinerary

import (
	"context"
	"time"
)

// Store is the persistence boundary for itinerary days and their activities.
// The Postgres Repository implements it in production; tests use an in-memory
// fake.
type Store interface {
	// CreateDay inserts a date into a trip's itinerary
	CreateDay(ctx context.Context, tripID string, date time.Time) (*ItineraryDay, error)

	// GetDayByID returns one day, nil if absent
	GetDayByID(ctx context.Context, id string) (*ItineraryDay, error)

	// ListDaysByTripID returns a trip's days in date order
	ListDaysByTripID(ctx context.Context, tripID string) ([]*ItineraryDay, error)

	// UpdateDayNotes sets a day's notes, returning the updated day or nil if
	// no such day exists
	UpdateDayNotes(ctx context.Context, id, notes string) (*ItineraryDay, error)

	// DeleteDay deletes a day; its activities go with it via cascade
	DeleteDay(ctx context.Context, id string) error

	// GetActivitiesByDayIDs returns all activities belonging to the given
	// days, ordered by position. An empty ID set must return empty without
	// querying.
	GetActivitiesByDayIDs(ctx context.Context, dayIDs []string) ([]*Activity, error)

	// CountActivities returns how many activities a day has
	CountActivities(ctx context.Context, dayID string) (int, error)

	// CreateActivity inserts an activity at the given position
	CreateActivity(ctx context.Context, req *AddActivityRequest, startTime, endTime *time.Time, orderIndex int, createdBy string) (*Activity, error)

	// GetActivityByID returns one activity, nil if absent
	GetActivityByID(ctx context.Context, id string) (*Activity, error)

	// UpdateActivity applies the non-nil fields of req, returning the updated
	// activity or nil if no such activity exists
	UpdateActivity(ctx context.Context, id string, req *UpdateActivityRequest, startTime, endTime *time.Time) (*Activity, error)

	// DeleteActivity deletes an activity
	DeleteActivity(ctx context.Context, id string) error

	// SetActivityOrder moves an activity to the given position
	SetActivityOrder(ctx context.Context, id string, orderIndex int) error
}
