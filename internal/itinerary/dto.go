package itinerary

import "time"

// AddDayRequest represents the request to add a day to a trip's itinerary
type AddDayRequest struct {
	TripID string `json:"trip_id" validate:"required"`
	Date   string `json:"date" validate:"required"` // YYYY-MM-DD
}

// UpdateDayRequest represents the request to update a day's notes
type UpdateDayRequest struct {
	Notes string `json:"notes"`
}

// AddActivityRequest represents the request to add an activity to a day
type AddActivityRequest struct {
	DayID        string   `json:"day_id" validate:"required"`
	Name         string   `json:"name" validate:"required,min=1,max=100"`
	Description  *string  `json:"description,omitempty"`
	LocationName *string  `json:"location_name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	StartTime    *string  `json:"start_time,omitempty"`
	EndTime      *string  `json:"end_time,omitempty"`
	Category     Category `json:"category,omitempty"` // defaults to other
}

// UpdateActivityRequest represents the request to update an activity
type UpdateActivityRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string   `json:"description,omitempty"`
	LocationName *string   `json:"location_name,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	StartTime    *string   `json:"start_time,omitempty"`
	EndTime      *string   `json:"end_time,omitempty"`
	Category     *Category `json:"category,omitempty"`
}

// ReorderRequest represents the request to reorder a day's activities
type ReorderRequest struct {
	ActivityIDs []string `json:"activity_ids" validate:"required,min=1"`
}

// DayResponse represents the response for a day with its activities
type DayResponse struct {
	ID         string              `json:"id"`
	TripID     string              `json:"trip_id"`
	Date       string              `json:"date"`
	Notes      *string             `json:"notes,omitempty"`
	Activities []*ActivityResponse `json:"activities"`
}

// ActivityResponse represents the response for an activity
type ActivityResponse struct {
	ID           string   `json:"id"`
	DayID        string   `json:"day_id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description,omitempty"`
	LocationName *string  `json:"location_name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	StartTime    *string  `json:"start_time,omitempty"`
	EndTime      *string  `json:"end_time,omitempty"`
	Category     Category `json:"category"`
	OrderIndex   int      `json:"order_index"`
	CreatedBy    string   `json:"created_by"`
}

// ToResponse converts an ItineraryDay to a DayResponse without activities
func (d *ItineraryDay) ToResponse() *DayResponse {
	return &DayResponse{
		ID:         d.ID,
		TripID:     d.TripID,
		Date:       d.Date.Format("2006-01-02"),
		Notes:      d.Notes,
		Activities: []*ActivityResponse{},
	}
}

// ToResponse converts an Activity to an ActivityResponse
func (a *Activity) ToResponse() *ActivityResponse {
	resp := &ActivityResponse{
		ID:           a.ID,
		DayID:        a.DayID,
		Name:         a.Name,
		Description:  a.Description,
		LocationName: a.LocationName,
		Latitude:     a.Latitude,
		Longitude:    a.Longitude,
		Category:     a.Category,
		OrderIndex:   a.OrderIndex,
		CreatedBy:    a.CreatedBy,
	}
	if a.StartTime != nil {
		t := a.StartTime.UTC().Format(time.RFC3339)
		resp.StartTime = &t
	}
	if a.EndTime != nil {
		t := a.EndTime.UTC().Format(time.RFC3339)
		resp.EndTime = &t
	}
	return resp
}

// ToResponse converts a DayWithActivities to its DTO with nested activities
func (d *DayWithActivities) ToResponse() *DayResponse {
	resp := d.Day.ToResponse()
	resp.Activities = make([]*ActivityResponse, len(d.Activities))
	for i, a := range d.Activities {
		resp.Activities[i] = a.ToResponse()
	}
	return resp
}
