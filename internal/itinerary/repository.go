package itinerary

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Repository handles itinerary data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new itinerary repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

// CreateDay inserts a new day into a trip's itinerary
func (r *Repository) CreateDay(ctx context.Context, tripID string, date time.Time) (*ItineraryDay, error) {
	query := `
		INSERT INTO itinerary_days (trip_id, date)
		VALUES ($1, $2)
		RETURNING id, trip_id, date, notes, created_at
	`

	d := &ItineraryDay{}
	err := r.db.QueryRowContext(ctx, query, tripID, date).Scan(
		&d.ID,
		&d.TripID,
		&d.Date,
		&d.Notes,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create day: %w", err)
	}

	return d, nil
}

// GetDayByID retrieves a day by its ID
func (r *Repository) GetDayByID(ctx context.Context, id string) (*ItineraryDay, error) {
	query := `
		SELECT id, trip_id, date, notes, created_at
		FROM itinerary_days
		WHERE id = $1
	`

	d := &ItineraryDay{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.TripID,
		&d.Date,
		&d.Notes,
		&d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get day: %w", err)
	}

	return d, nil
}

// ListDaysByTripID retrieves all days for a trip in date order
func (r *Repository) ListDaysByTripID(ctx context.Context, tripID string) ([]*ItineraryDay, error) {
	query := `
		SELECT id, trip_id, date, notes, created_at
		FROM itinerary_days
		WHERE trip_id = $1
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list days: %w", err)
	}
	defer rows.Close()

	var days []*ItineraryDay
	for rows.Next() {
		d := &ItineraryDay{}
		if err := rows.Scan(
			&d.ID,
			&d.TripID,
			&d.Date,
			&d.Notes,
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan day: %w", err)
		}
		days = append(days, d)
	}

	return days, nil
}

// UpdateDayNotes sets a day's notes
func (r *Repository) UpdateDayNotes(ctx context.Context, id, notes string) (*ItineraryDay, error) {
	query := `
		UPDATE itinerary_days
		SET notes = $2
		WHERE id = $1
		RETURNING id, trip_id, date, notes, created_at
	`

	d := &ItineraryDay{}
	err := r.db.QueryRowContext(ctx, query, id, notes).Scan(
		&d.ID,
		&d.TripID,
		&d.Date,
		&d.Notes,
		&d.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update day: %w", err)
	}

	return d, nil
}

// DeleteDay removes a day; its activities cascade
func (r *Repository) DeleteDay(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM itinerary_days WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete day: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("day not found")
	}

	return nil
}

// GetActivitiesByDayIDs retrieves all activities for a set of days, ordered
// by their position within each day
func (r *Repository) GetActivitiesByDayIDs(ctx context.Context, dayIDs []string) ([]*Activity, error) {
	if len(dayIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, day_id, name, description, location_name, latitude, longitude,
		       start_time, end_time, category, order_index, created_by, created_at, updated_at
		FROM activities
		WHERE day_id = ANY($1)
		ORDER BY order_index
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(dayIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to get activities: %w", err)
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		a := &Activity{}
		if err := rows.Scan(
			&a.ID,
			&a.DayID,
			&a.Name,
			&a.Description,
			&a.LocationName,
			&a.Latitude,
			&a.Longitude,
			&a.StartTime,
			&a.EndTime,
			&a.Category,
			&a.OrderIndex,
			&a.CreatedBy,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	return activities, nil
}

// CountActivities returns how many activities a day has
func (r *Repository) CountActivities(ctx context.Context, dayID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE day_id = $1`, dayID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return count, nil
}

// CreateActivity inserts a new activity
func (r *Repository) CreateActivity(ctx context.Context, req *AddActivityRequest, startTime, endTime *time.Time, orderIndex int, createdBy string) (*Activity, error) {
	query := `
		INSERT INTO activities (day_id, name, description, location_name, latitude, longitude,
		                        start_time, end_time, category, order_index, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, day_id, name, description, location_name, latitude, longitude,
		          start_time, end_time, category, order_index, created_by, created_at, updated_at
	`

	a := &Activity{}
	err := r.db.QueryRowContext(ctx, query,
		req.DayID,
		req.Name,
		req.Description,
		req.LocationName,
		req.Latitude,
		req.Longitude,
		startTime,
		endTime,
		req.Category,
		orderIndex,
		createdBy,
	).Scan(
		&a.ID,
		&a.DayID,
		&a.Name,
		&a.Description,
		&a.LocationName,
		&a.Latitude,
		&a.Longitude,
		&a.StartTime,
		&a.EndTime,
		&a.Category,
		&a.OrderIndex,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return a, nil
}

// GetActivityByID retrieves an activity by its ID
func (r *Repository) GetActivityByID(ctx context.Context, id string) (*Activity, error) {
	query := `
		SELECT id, day_id, name, description, location_name, latitude, longitude,
		       start_time, end_time, category, order_index, created_by, created_at, updated_at
		FROM activities
		WHERE id = $1
	`

	a := &Activity{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.DayID,
		&a.Name,
		&a.Description,
		&a.LocationName,
		&a.Latitude,
		&a.Longitude,
		&a.StartTime,
		&a.EndTime,
		&a.Category,
		&a.OrderIndex,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return a, nil
}

// UpdateActivity modifies an activity and stamps updated_at
func (r *Repository) UpdateActivity(ctx context.Context, id string, req *UpdateActivityRequest, startTime, endTime *time.Time) (*Activity, error) {
	query := `
		UPDATE activities
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    location_name = COALESCE($4, location_name),
		    latitude = COALESCE($5, latitude),
		    longitude = COALESCE($6, longitude),
		    start_time = COALESCE($7, start_time),
		    end_time = COALESCE($8, end_time),
		    category = COALESCE($9, category),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, day_id, name, description, location_name, latitude, longitude,
		          start_time, end_time, category, order_index, created_by, created_at, updated_at
	`

	a := &Activity{}
	err := r.db.QueryRowContext(ctx, query, id,
		req.Name,
		req.Description,
		req.LocationName,
		req.Latitude,
		req.Longitude,
		startTime,
		endTime,
		req.Category,
	).Scan(
		&a.ID,
		&a.DayID,
		&a.Name,
		&a.Description,
		&a.LocationName,
		&a.Latitude,
		&a.Longitude,
		&a.StartTime,
		&a.EndTime,
		&a.Category,
		&a.OrderIndex,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	return a, nil
}

// DeleteActivity removes an activity
func (r *Repository) DeleteActivity(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("activity not found")
	}

	return nil
}

// SetActivityOrder writes one activity's position within its day
func (r *Repository) SetActivityOrder(ctx context.Context, id string, orderIndex int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE activities SET order_index = $2, updated_at = NOW() WHERE id = $1`, id, orderIndex)
	if err != nil {
		return fmt.Errorf("failed to set activity order: %w", err)
	}
	return nil
}
