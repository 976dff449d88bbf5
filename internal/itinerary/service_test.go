package itinerary

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store used by the service tests
type memStore struct {
	days       map[string]*ItineraryDay
	activities map[string]*Activity

	orderErr error

	activityQueries int // counts GetActivitiesByDayIDs calls that hit the store
}

func newMemStore() *memStore {
	return &memStore{
		days:       make(map[string]*ItineraryDay),
		activities: make(map[string]*Activity),
	}
}

func (m *memStore) CreateDay(ctx context.Context, tripID string, date time.Time) (*ItineraryDay, error) {
	d := &ItineraryDay{
		ID:        uuid.NewString(),
		TripID:    tripID,
		Date:      date,
		CreatedAt: time.Now(),
	}
	m.days[d.ID] = d
	return d, nil
}

func (m *memStore) GetDayByID(ctx context.Context, id string) (*ItineraryDay, error) {
	return m.days[id], nil
}

func (m *memStore) ListDaysByTripID(ctx context.Context, tripID string) ([]*ItineraryDay, error) {
	var out []*ItineraryDay
	for _, d := range m.days {
		if d.TripID == tripID {
			out = append(out, d)
		}
	}
	// Date order, as the real repository orders
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memStore) UpdateDayNotes(ctx context.Context, id, notes string) (*ItineraryDay, error) {
	d, ok := m.days[id]
	if !ok {
		return nil, nil
	}
	d.Notes = &notes
	return d, nil
}

func (m *memStore) DeleteDay(ctx context.Context, id string) error {
	delete(m.days, id)
	for activityID, a := range m.activities {
		if a.DayID == id {
			delete(m.activities, activityID)
		}
	}
	return nil
}

func (m *memStore) GetActivitiesByDayIDs(ctx context.Context, dayIDs []string) ([]*Activity, error) {
	m.activityQueries++

	want := make(map[string]bool, len(dayIDs))
	for _, id := range dayIDs {
		want[id] = true
	}

	var out []*Activity
	for _, a := range m.activities {
		if want[a.DayID] {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memStore) CountActivities(ctx context.Context, dayID string) (int, error) {
	count := 0
	for _, a := range m.activities {
		if a.DayID == dayID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CreateActivity(ctx context.Context, req *AddActivityRequest, startTime, endTime *time.Time, orderIndex int, createdBy string) (*Activity, error) {
	a := &Activity{
		ID:           uuid.NewString(),
		DayID:        req.DayID,
		Name:         req.Name,
		Description:  req.Description,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		StartTime:    startTime,
		EndTime:      endTime,
		Category:     req.Category,
		OrderIndex:   orderIndex,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.activities[a.ID] = a
	return a, nil
}

func (m *memStore) GetActivityByID(ctx context.Context, id string) (*Activity, error) {
	return m.activities[id], nil
}

func (m *memStore) UpdateActivity(ctx context.Context, id string, req *UpdateActivityRequest, startTime, endTime *time.Time) (*Activity, error) {
	a, ok := m.activities[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if startTime != nil {
		a.StartTime = startTime
	}
	if endTime != nil {
		a.EndTime = endTime
	}
	a.UpdatedAt = time.Now()
	return a, nil
}

func (m *memStore) DeleteActivity(ctx context.Context, id string) error {
	delete(m.activities, id)
	return nil
}

func (m *memStore) SetActivityOrder(ctx context.Context, id string, orderIndex int) error {
	if m.orderErr != nil {
		return m.orderErr
	}
	a, ok := m.activities[id]
	if !ok {
		return nil
	}
	a.OrderIndex = orderIndex
	return nil
}

var _ Store = (*memStore)(nil)

func newTestService(store *memStore) *Service {
	return NewService(store, nil)
}

func addTestDay(t *testing.T, s *Service, tripID, date string) *ItineraryDay {
	t.Helper()
	d, err := s.AddDay(context.Background(), &AddDayRequest{TripID: tripID, Date: date})
	if err != nil {
		t.Fatalf("AddDay(%s) returned error: %v", date, err)
	}
	return d
}

func addTestActivity(t *testing.T, s *Service, dayID, name string) *Activity {
	t.Helper()
	a, err := s.AddActivity(context.Background(), "alice", &AddActivityRequest{
		DayID: dayID,
		Name:  name,
	})
	if err != nil {
		t.Fatalf("AddActivity(%s) returned error: %v", name, err)
	}
	return a
}

func TestFetchItineraryGroupsActivitiesUnderDays(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	// Second date first; the fetch must still come back in date order
	day2 := addTestDay(t, s, "t1", "2026-06-02")
	day1 := addTestDay(t, s, "t1", "2026-06-01")

	addTestActivity(t, s, day1.ID, "Louvre")
	addTestActivity(t, s, day1.ID, "Dinner")
	addTestActivity(t, s, day2.ID, "Versailles")

	got, err := s.FetchItinerary(context.Background(), "t1")
	if err != nil {
		t.Fatalf("FetchItinerary returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("wanted 2 days, got %d", len(got))
	}

	if got[0].Day.ID != day1.ID || got[1].Day.ID != day2.ID {
		t.Errorf("days not in date order: got %s, %s", got[0].Day.Date, got[1].Day.Date)
	}
	if len(got[0].Activities) != 2 {
		t.Errorf("wanted 2 activities on the first day, got %d", len(got[0].Activities))
	}
	if len(got[1].Activities) != 1 || got[1].Activities[0].Name != "Versailles" {
		t.Errorf("second day should hold only Versailles, got %v", got[1].Activities)
	}
	for _, dwa := range got {
		for i, a := range dwa.Activities {
			if a.DayID != dwa.Day.ID {
				t.Errorf("activity %s grouped under the wrong day", a.Name)
			}
			if a.OrderIndex != i {
				t.Errorf("activity %s at slice position %d has order index %d", a.Name, i, a.OrderIndex)
			}
		}
	}
}

func TestFetchItineraryEmptyTrip(t *testing.T) {
	// Zero days must short-circuit without an activities query

	store := newMemStore()
	s := newTestService(store)

	got, err := s.FetchItinerary(context.Background(), "t1")
	if err != nil {
		t.Fatalf("FetchItinerary returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("wanted 0 days, got %d", len(got))
	}
	if store.activityQueries != 0 {
		t.Errorf("activities were queried for a trip with no days")
	}
}

func TestAddActivityAppendsAtEnd(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	day := addTestDay(t, s, "t1", "2026-06-01")

	first := addTestActivity(t, s, day.ID, "Louvre")
	second := addTestActivity(t, s, day.ID, "Dinner")

	if first.OrderIndex != 0 || second.OrderIndex != 1 {
		t.Errorf("wanted positions 0 and 1, got %d and %d", first.OrderIndex, second.OrderIndex)
	}
	if first.Category != CategoryOther {
		t.Errorf("wanted default category other, got %q", first.Category)
	}
}

func TestAddActivityUnknownDay(t *testing.T) {
	s := newTestService(newMemStore())

	_, err := s.AddActivity(context.Background(), "alice", &AddActivityRequest{
		DayID: uuid.NewString(),
		Name:  "Louvre",
	})
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("wanted ErrDayNotFound, got %v", err)
	}
}

func TestReorderActivitiesAssignsPositions(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	day := addTestDay(t, s, "t1", "2026-06-01")
	a := addTestActivity(t, s, day.ID, "Louvre")
	b := addTestActivity(t, s, day.ID, "Dinner")
	c := addTestActivity(t, s, day.ID, "Jazz club")

	order := []string{c.ID, a.ID, b.ID}
	if err := s.ReorderActivities(context.Background(), day.ID, order); err != nil {
		t.Fatalf("ReorderActivities returned error: %v", err)
	}

	for i, id := range order {
		if got := store.activities[id].OrderIndex; got != i {
			t.Errorf("activity at position %d has order index %d", i, got)
		}
	}

	// The next fetch reflects the new order
	got, err := s.FetchItinerary(context.Background(), "t1")
	if err != nil {
		t.Fatalf("FetchItinerary returned error: %v", err)
	}
	names := make([]string, len(got[0].Activities))
	for i, act := range got[0].Activities {
		names[i] = act.Name
	}
	want := []string{"Jazz club", "Louvre", "Dinner"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("position %d: wanted %s, got %s", i, want[i], names[i])
		}
	}
}

func TestReorderActivitiesUnknownDay(t *testing.T) {
	s := newTestService(newMemStore())

	err := s.ReorderActivities(context.Background(), uuid.NewString(), []string{uuid.NewString()})
	if !errors.Is(err, ErrDayNotFound) {
		t.Errorf("wanted ErrDayNotFound, got %v", err)
	}
}

func TestReorderActivitiesStoreFailure(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	day := addTestDay(t, s, "t1", "2026-06-01")
	a := addTestActivity(t, s, day.ID, "Louvre")

	store.orderErr = errors.New("connection refused")
	if err := s.ReorderActivities(context.Background(), day.ID, []string{a.ID}); err == nil {
		t.Errorf("wanted error from failing reorder")
	}
}
