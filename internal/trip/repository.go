package trip

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository handles trip and membership data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ Store = (*Repository)(nil)

// Create inserts a new trip into the database
func (r *Repository) Create(ctx context.Context, createdBy, joinCode, name string, description *string, startDate, endDate *time.Time) (*Trip, error) {
	query := `
		INSERT INTO trips (name, description, start_date, end_date, join_code, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, cover_image, start_date, end_date, join_code, created_by, created_at, updated_at
	`

	t := &Trip{}
	err := r.db.QueryRowContext(ctx, query, name, description, startDate, endDate, joinCode, createdBy).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CoverImage,
		&t.StartDate,
		&t.EndDate,
		&t.JoinCode,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return t, nil
}

// GetByID retrieves a trip by its ID
func (r *Repository) GetByID(ctx context.Context, id string) (*Trip, error) {
	query := `
		SELECT id, name, description, cover_image, start_date, end_date, join_code, created_by, created_at, updated_at
		FROM trips
		WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// GetByJoinCode retrieves a trip by its join code
func (r *Repository) GetByJoinCode(ctx context.Context, code string) (*Trip, error) {
	query := `
		SELECT id, name, description, cover_image, start_date, end_date, join_code, created_by, created_at, updated_at
		FROM trips
		WHERE join_code = $1
	`
	return r.getOne(ctx, query, code)
}

func (r *Repository) getOne(ctx context.Context, query string, arg interface{}) (*Trip, error) {
	t := &Trip{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CoverImage,
		&t.StartDate,
		&t.EndDate,
		&t.JoinCode,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return t, nil
}

// ListByUserID retrieves all trips the user is a member of, most recently
// updated first, with member counts
func (r *Repository) ListByUserID(ctx context.Context, userID string) ([]*Trip, error) {
	query := `
		SELECT t.id, t.name, t.description, t.cover_image, t.start_date, t.end_date,
		       t.join_code, t.created_by, t.created_at, t.updated_at,
		       (SELECT COUNT(*) FROM trip_members c WHERE c.trip_id = t.id) AS member_count
		FROM trips t
		JOIN trip_members tm ON t.id = tm.trip_id
		WHERE tm.user_id = $1
		ORDER BY t.updated_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		t := &Trip{}
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&t.CoverImage,
			&t.StartDate,
			&t.EndDate,
			&t.JoinCode,
			&t.CreatedBy,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.MemberCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, t)
	}

	return trips, nil
}

// Update modifies an existing trip and stamps updated_at
func (r *Repository) Update(ctx context.Context, id string, name, description, coverImage *string, startDate, endDate *time.Time) (*Trip, error) {
	query := `
		UPDATE trips
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    cover_image = COALESCE($4, cover_image),
		    start_date = COALESCE($5, start_date),
		    end_date = COALESCE($6, end_date),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, cover_image, start_date, end_date, join_code, created_by, created_at, updated_at
	`

	t := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id, name, description, coverImage, startDate, endDate).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.CoverImage,
		&t.StartDate,
		&t.EndDate,
		&t.JoinCode,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return t, nil
}

// Delete removes a trip; memberships, itinerary and expenses cascade
func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("trip not found")
	}

	return nil
}

// AddMember adds a user to a trip
func (r *Repository) AddMember(ctx context.Context, tripID, userID string, role MemberRole) (*TripMember, error) {
	query := `
		INSERT INTO trip_members (trip_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, trip_id, user_id, role, joined_at
	`

	m := &TripMember{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID, role).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return m, nil
}

// GetMember retrieves one membership row
func (r *Repository) GetMember(ctx context.Context, tripID, userID string) (*TripMember, error) {
	query := `
		SELECT tm.id, tm.trip_id, tm.user_id, tm.role, tm.joined_at, u.display_name, u.avatar_url
		FROM trip_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.trip_id = $1 AND tm.user_id = $2
	`

	m := &TripMember{}
	err := r.db.QueryRowContext(ctx, query, tripID, userID).Scan(
		&m.ID,
		&m.TripID,
		&m.UserID,
		&m.Role,
		&m.JoinedAt,
		&m.DisplayName,
		&m.AvatarURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return m, nil
}

// GetMembers retrieves all members of a trip in join order
func (r *Repository) GetMembers(ctx context.Context, tripID string) ([]*TripMember, error) {
	query := `
		SELECT tm.id, tm.trip_id, tm.user_id, tm.role, tm.joined_at, u.display_name, u.avatar_url
		FROM trip_members tm
		JOIN users u ON tm.user_id = u.id
		WHERE tm.trip_id = $1
		ORDER BY tm.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*TripMember
	for rows.Next() {
		m := &TripMember{}
		if err := rows.Scan(
			&m.ID,
			&m.TripID,
			&m.UserID,
			&m.Role,
			&m.JoinedAt,
			&m.DisplayName,
			&m.AvatarURL,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	return members, nil
}

// RemoveMember removes a user from a trip
func (r *Repository) RemoveMember(ctx context.Context, tripID, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_members WHERE trip_id = $1 AND user_id = $2`, tripID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
