package trip

import (
	"context"
	"time"
)

// Store is the persistence boundary for trips and their memberships. The
// Postgres Repository implements it in production; tests use an in-memory
// fake.
type Store interface {
	// Create inserts a trip with the given join code
	Create(ctx context.Context, createdBy, joinCode, name string, description *string, startDate, endDate *time.Time) (*Trip, error)

	// GetByID returns one trip, nil if absent
	GetByID(ctx context.Context, id string) (*Trip, error)

	// GetByJoinCode returns the trip carrying the code, nil if absent
	GetByJoinCode(ctx context.Context, code string) (*Trip, error)

	// ListByUserID returns the trips the user is a member of, newest first,
	// with member counts populated
	ListByUserID(ctx context.Context, userID string) ([]*Trip, error)

	// Update applies the non-nil fields, returning the updated trip or nil if
	// no such trip exists
	Update(ctx context.Context, id string, name, description, coverImage *string, startDate, endDate *time.Time) (*Trip, error)

	// Delete deletes a trip; memberships go with it via cascade
	Delete(ctx context.Context, id string) error

	// AddMember adds a user to a trip with the given role
	AddMember(ctx context.Context, tripID, userID string, role MemberRole) (*TripMember, error)

	// GetMember returns one membership row with the user's display identity
	// joined on, nil if absent
	GetMember(ctx context.Context, tripID, userID string) (*TripMember, error)

	// GetMembers returns all members of a trip in join order
	GetMembers(ctx context.Context, tripID string) ([]*TripMember, error)

	// RemoveMember deletes a membership, reporting ErrMemberNotFound when the
	// user was not a member
	RemoveMember(ctx context.Context, tripID, userID string) error
}
