package trip

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tripmate/api/internal/expense"
	"github.com/tripmate/api/internal/realtime"
)

// Common errors
var (
	ErrTripNotFound   = errors.New("trip not found, check the code and try again")
	ErrMemberNotFound = errors.New("member not found")
	ErrAlreadyMember  = errors.New("you're already a member of this trip")
	ErrNotOwner       = errors.New("only the trip owner can do this")
	ErrNotMember      = errors.New("not a member of this trip")
	ErrInvalidDate    = errors.New("dates must be in YYYY-MM-DD format")
)

// Service handles trip business logic
type Service struct {
	repo Store
	pub  realtime.Publisher
}

// NewService creates a new trip service
func NewService(repo Store, pub realtime.Publisher) *Service {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	return &Service{repo: repo, pub: pub}
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

// Create creates a trip with a fresh join code and makes the creator its owner
func (s *Service) Create(ctx context.Context, creatorID string, req *CreateTripRequest) (*Trip, error) {
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, creatorID, generateJoinCode(), req.Name, req.Description, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.AddMember(ctx, t.ID, creatorID, MemberRoleOwner); err != nil {
		return nil, err
	}

	s.pub.Publish(realtime.NewEvent(t.ID, realtime.TableTrips, realtime.ActionInsert))
	return t, nil
}

// JoinByCode adds the user to the trip identified by a join code
func (s *Service) JoinByCode(ctx context.Context, userID, code string) (*Trip, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	t, err := s.repo.GetByJoinCode(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}

	existing, err := s.repo.GetMember(ctx, t.ID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyMember
	}

	if _, err := s.repo.AddMember(ctx, t.ID, userID, MemberRoleEditor); err != nil {
		return nil, err
	}

	s.pub.Publish(realtime.NewEvent(t.ID, realtime.TableTripMembers, realtime.ActionInsert))
	return t, nil
}

// GetByID retrieves a trip by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}
	return t, nil
}

// GetByIDWithMembers retrieves a trip with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id string) (*Trip, []*TripMember, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return t, members, nil
}

// ListByUserID retrieves all trips the user belongs to
func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Trip, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Update modifies a trip; any member with edit rights may call this
func (s *Service) Update(ctx context.Context, id, userID string, req *UpdateTripRequest) (*Trip, error) {
	member, err := s.repo.GetMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotMember
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Update(ctx, id, req.Name, req.Description, req.CoverImage, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}

	s.pub.Publish(realtime.NewEvent(id, realtime.TableTrips, realtime.ActionUpdate))
	return t, nil
}

// Delete removes a trip; owner only
func (s *Service) Delete(ctx context.Context, id, userID string) error {
	member, err := s.repo.GetMember(ctx, id, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrNotMember
	}
	if member.Role != MemberRoleOwner {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.pub.Publish(realtime.NewEvent(id, realtime.TableTrips, realtime.ActionDelete))
	return nil
}

// GetMembers retrieves the full membership of a trip
func (s *Service) GetMembers(ctx context.Context, tripID string) ([]*TripMember, error) {
	t, err := s.repo.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}

	return s.repo.GetMembers(ctx, tripID)
}

// RemoveMember removes a user from a trip. Owners can remove anyone;
// everyone else can only remove themselves.
func (s *Service) RemoveMember(ctx context.Context, tripID, callerID, userID string) error {
	if callerID != userID {
		caller, err := s.repo.GetMember(ctx, tripID, callerID)
		if err != nil {
			return err
		}
		if caller == nil || caller.Role != MemberRoleOwner {
			return ErrNotOwner
		}
	}

	// The repo reports ErrMemberNotFound for a missing membership; anything
	// else is a real store failure and surfaces as-is.
	if err := s.repo.RemoveMember(ctx, tripID, userID); err != nil {
		return err
	}

	s.pub.Publish(realtime.NewEvent(tripID, realtime.TableTripMembers, realtime.ActionDelete))
	return nil
}

// Roster returns the member roster in the shape the balance calculator takes
func (s *Service) Roster(ctx context.Context, tripID string) ([]expense.Member, error) {
	members, err := s.repo.GetMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}

	roster := make([]expense.Member, len(members))
	for i, m := range members {
		roster[i] = expense.Member{ID: m.UserID, DisplayName: m.DisplayName}
	}
	return roster, nil
}
