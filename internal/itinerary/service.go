package itinerary

import (
	"context"
	"errors"
	"time"

	"github.com/tripmate/api/internal/realtime"
)

// Common errors
var (
	ErrDayNotFound      = errors.New("itinerary day not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime      = errors.New("times must be in RFC 3339 format")
	ErrInvalidCategory  = errors.New("unknown activity category")
)

// Service handles itinerary business logic
type Service struct {
	repo Store
	pub  realtime.Publisher
}

// NewService creates a new itinerary service
func NewService(repo Store, pub realtime.Publisher) *Service {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	return &Service{repo: repo, pub: pub}
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, ErrInvalidTime
	}
	return &t, nil
}

// FetchItinerary loads a trip's days in date order with each day's activities
// nested in position order. Zero days short-circuits without an activities
// query.
func (s *Service) FetchItinerary(ctx context.Context, tripID string) ([]*DayWithActivities, error) {
	days, err := s.repo.ListDaysByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return []*DayWithActivities{}, nil
	}

	dayIDs := make([]string, len(days))
	for i, d := range days {
		dayIDs[i] = d.ID
	}

	activities, err := s.repo.GetActivitiesByDayIDs(ctx, dayIDs)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string][]*Activity, len(days))
	for _, a := range activities {
		byDay[a.DayID] = append(byDay[a.DayID], a)
	}

	assembled := make([]*DayWithActivities, len(days))
	for i, d := range days {
		assembled[i] = &DayWithActivities{
			Day:        d,
			Activities: byDay[d.ID],
		}
	}

	return assembled, nil
}

// AddDay adds a date to a trip's itinerary
func (s *Service) AddDay(ctx context.Context, req *AddDayRequest) (*ItineraryDay, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	d, err := s.repo.CreateDay(ctx, req.TripID, date)
	if err != nil {
		return nil, err
	}

	s.pub.Publish(realtime.NewEvent(req.TripID, realtime.TableItineraryDays, realtime.ActionInsert))
	return d, nil
}

// UpdateDay sets a day's notes
func (s *Service) UpdateDay(ctx context.Context, dayID, notes string) (*ItineraryDay, error) {
	d, err := s.repo.UpdateDayNotes(ctx, dayID, notes)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDayNotFound
	}

	s.pub.Publish(realtime.NewEvent(d.TripID, realtime.TableItineraryDays, realtime.ActionUpdate))
	return d, nil
}

// DeleteDay removes a day and its activities
func (s *Service) DeleteDay(ctx context.Context, dayID string) error {
	d, err := s.repo.GetDayByID(ctx, dayID)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDayNotFound
	}

	if err := s.repo.DeleteDay(ctx, dayID); err != nil {
		return err
	}

	s.pub.Publish(realtime.NewEvent(d.TripID, realtime.TableItineraryDays, realtime.ActionDelete))
	return nil
}

// AddActivity appends an activity to a day; the new activity's position is
// the current activity count
func (s *Service) AddActivity(ctx context.Context, userID string, req *AddActivityRequest) (*Activity, error) {
	day, err := s.repo.GetDayByID(ctx, req.DayID)
	if err != nil {
		return nil, err
	}
	if day == nil {
		return nil, ErrDayNotFound
	}

	if req.Category == "" {
		req.Category = CategoryOther
	}
	if !ValidCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	orderIndex, err := s.repo.CountActivities(ctx, req.DayID)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.CreateActivity(ctx, req, startTime, endTime, orderIndex, userID)
	if err != nil {
		return nil, err
	}

	s.pub.Publish(realtime.NewEvent(day.TripID, realtime.TableActivities, realtime.ActionInsert))
	return a, nil
}

// UpdateActivity modifies an activity
func (s *Service) UpdateActivity(ctx context.Context, activityID string, req *UpdateActivityRequest) (*Activity, error) {
	if req.Category != nil && !ValidCategory(*req.Category) {
		return nil, ErrInvalidCategory
	}

	startTime, err := parseTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := parseTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.UpdateActivity(ctx, activityID, req, startTime, endTime)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrActivityNotFound
	}

	day, err := s.repo.GetDayByID(ctx, a.DayID)
	if err == nil && day != nil {
		s.pub.Publish(realtime.NewEvent(day.TripID, realtime.TableActivities, realtime.ActionUpdate))
	}
	return a, nil
}

// DeleteActivity removes an activity
func (s *Service) DeleteActivity(ctx context.Context, activityID string) error {
	a, err := s.repo.GetActivityByID(ctx, activityID)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrActivityNotFound
	}

	if err := s.repo.DeleteActivity(ctx, activityID); err != nil {
		return err
	}

	if day, err := s.repo.GetDayByID(ctx, a.DayID); err == nil && day != nil {
		s.pub.Publish(realtime.NewEvent(day.TripID, realtime.TableActivities, realtime.ActionDelete))
	}
	return nil
}

// ReorderActivities rewrites the positions of a day's activities to match the
// given ID order: each activity's order_index becomes its slice position
func (s *Service) ReorderActivities(ctx context.Context, dayID string, activityIDs []string) error {
	day, err := s.repo.GetDayByID(ctx, dayID)
	if err != nil {
		return err
	}
	if day == nil {
		return ErrDayNotFound
	}

	for i, id := range activityIDs {
		if err := s.repo.SetActivityOrder(ctx, id, i); err != nil {
			return err
		}
	}

	s.pub.Publish(realtime.NewEvent(day.TripID, realtime.TableActivities, realtime.ActionUpdate))
	return nil
}
