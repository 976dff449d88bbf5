package itinerary

import "time"

// Category classifies an activity
type Category string

const (
	CategoryFood       Category = "food"
	CategoryAttraction Category = "attraction"
	CategoryTransport  Category = "transport"
	CategoryLodging    Category = "lodging"
	CategoryOther      Category = "other"
)

// ValidCategory reports whether c is one of the known categories
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFood, CategoryAttraction, CategoryTransport, CategoryLodging, CategoryOther:
		return true
	}
	return false
}

// ItineraryDay is one date in a trip's day-by-day plan
type ItineraryDay struct {
	ID        string    `json:"id"`
	TripID    string    `json:"trip_id"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Activity is one entry in a day's plan, ordered by OrderIndex
type Activity struct {
	ID           string     `json:"id"`
	DayID        string     `json:"day_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	LocationName *string    `json:"location_name,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	StartTime    *time.Time `json:"start_time,omitempty"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Category     Category   `json:"category"`
	OrderIndex   int        `json:"order_index"`
	CreatedBy    string     `json:"created_by"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// DayWithActivities combines a day with its ordered activities
type DayWithActivities struct {
	Day        *ItineraryDay
	Activities []*Activity
}
