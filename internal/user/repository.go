package user

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, deviceID, displayName string) (*User, error) {
	query := `
		INSERT INTO users (device_id, display_name)
		VALUES ($1, $2)
		RETURNING id, device_id, display_name, avatar_url, created_at, updated_at
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, deviceID, displayName).Scan(
		&u.ID,
		&u.DeviceID,
		&u.DisplayName,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, device_id, display_name, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.DeviceID,
		&u.DisplayName,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// GetByDeviceID retrieves the user bound to a device
func (r *Repository) GetByDeviceID(ctx context.Context, deviceID string) (*User, error) {
	query := `
		SELECT id, device_id, display_name, avatar_url, created_at, updated_at
		FROM users
		WHERE device_id = $1
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, deviceID).Scan(
		&u.ID,
		&u.DeviceID,
		&u.DisplayName,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by device: %w", err)
	}

	return u, nil
}

// Update modifies an existing user
func (r *Repository) Update(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	query := `
		UPDATE users
		SET display_name = COALESCE($2, display_name),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, device_id, display_name, avatar_url, created_at, updated_at
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, id, req.DisplayName, req.AvatarURL).Scan(
		&u.ID,
		&u.DeviceID,
		&u.DisplayName,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}
