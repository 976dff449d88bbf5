package expense

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tripmate/api/internal/expense/split"
)

// memStore is an in-memory Store used by the service tests
type memStore struct {
	expenses map[string]*Expense
	splits   map[string]*ExpenseSplit

	listErr   error
	splitsErr error

	splitQueries int // counts GetSplitsByExpenseIDs calls that hit the store
}

func newMemStore() *memStore {
	return &memStore{
		expenses: make(map[string]*Expense),
		splits:   make(map[string]*ExpenseSplit),
	}
}

func (m *memStore) CreateExpenseWithSplits(ctx context.Context, req *CreateExpenseRequest, shares []split.Share) (*Expense, error) {
	e := &Expense{
		ID:          uuid.NewString(),
		TripID:      req.TripID,
		ActivityID:  req.ActivityID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		PaidBy:      req.PaidBy,
		SplitType:   req.SplitType,
		CreatedAt:   time.Now(),
	}
	m.expenses[e.ID] = e

	for _, sh := range shares {
		sp := &ExpenseSplit{
			ID:        uuid.NewString(),
			ExpenseID: e.ID,
			UserID:    sh.UserID,
			Amount:    sh.Amount,
			IsSettled: sh.Settled,
		}
		if sh.Settled {
			now := time.Now()
			sp.SettledAt = &now
		}
		m.splits[sp.ID] = sp
	}

	return e, nil
}

func (m *memStore) GetExpenseByID(ctx context.Context, id string) (*Expense, error) {
	return m.expenses[id], nil
}

func (m *memStore) ListExpensesByTripID(ctx context.Context, tripID string) ([]*Expense, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	var out []*Expense
	for _, e := range m.expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	// Newest first, as the real repository orders
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) GetSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) ([]*ExpenseSplit, error) {
	m.splitQueries++
	if m.splitsErr != nil {
		return nil, m.splitsErr
	}

	want := make(map[string]bool, len(expenseIDs))
	for _, id := range expenseIDs {
		want[id] = true
	}

	var out []*ExpenseSplit
	for _, sp := range m.splits {
		if want[sp.ExpenseID] {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (m *memStore) DeleteExpense(ctx context.Context, id string) error {
	delete(m.expenses, id)
	for splitID, sp := range m.splits {
		if sp.ExpenseID == id {
			delete(m.splits, splitID)
		}
	}
	return nil
}

func (m *memStore) SettleSplit(ctx context.Context, splitID string) (*ExpenseSplit, error) {
	sp, ok := m.splits[splitID]
	if !ok {
		return nil, nil
	}
	// Return a fresh split so callers holding the old one never see it change,
	// the same way a row scan hands out a new struct.
	updated := *sp
	updated.IsSettled = true
	if updated.SettledAt == nil {
		now := time.Now()
		updated.SettledAt = &now
	}
	m.splits[splitID] = &updated
	return &updated, nil
}

var _ Store = (*memStore)(nil)

func newTestService(store *memStore) *Service {
	return NewService(store, split.NewFactory(), nil)
}

func addDinner(t *testing.T, s *Service, tripID string) *Expense {
	t.Helper()
	e, err := s.AddExpense(context.Background(), &CreateExpenseRequest{
		TripID:      tripID,
		Description: "Dinner",
		Amount:      30,
		PaidBy:      "alice",
		SplitAmong:  []string{"alice", "bob", "carol"},
	})
	if err != nil {
		t.Fatalf("AddExpense returned error: %v", err)
	}
	return e
}

func TestAddExpenseCreatesSplitsAndRefreshesCache(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	e := addDinner(t, s, "t1")

	if e.SplitType != "equal" {
		t.Errorf("wanted split type equal by default, got %q", e.SplitType)
	}
	if e.Currency != "USD" {
		t.Errorf("wanted currency USD by default, got %q", e.Currency)
	}

	cached, ok := s.CachedExpenses("t1")
	if !ok {
		t.Fatalf("cache not populated after AddExpense")
	}
	if len(cached) != 1 {
		t.Fatalf("wanted 1 cached expense, got %d", len(cached))
	}

	splits := cached[0].Splits
	if len(splits) != 3 {
		t.Fatalf("wanted 3 splits, got %d", len(splits))
	}

	sum := 0.0
	for _, sp := range splits {
		sum += sp.Amount
		wantSettled := sp.UserID == "alice"
		if sp.IsSettled != wantSettled {
			t.Errorf("split for %s: wanted settled=%v, got %v", sp.UserID, wantSettled, sp.IsSettled)
		}
		if wantSettled && sp.SettledAt == nil {
			t.Errorf("payer's settled split should carry a settled_at timestamp")
		}
	}
	if !almostEqual(sum, 30) {
		t.Errorf("splits sum to %v, wanted 30", sum)
	}
}

func TestFetchExpensesEmptyTrip(t *testing.T) {
	// Zero expenses must set an empty cache without a splits query

	store := newMemStore()
	s := newTestService(store)

	got, err := s.FetchExpenses(context.Background(), "t1")
	if err != nil {
		t.Fatalf("FetchExpenses returned error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("wanted 0 expenses, got %d", len(got))
	}
	if store.splitQueries != 0 {
		t.Errorf("splits were queried for a trip with no expenses")
	}

	cached, ok := s.CachedExpenses("t1")
	if !ok {
		t.Fatalf("cache should be populated (empty) after a successful fetch")
	}
	if len(cached) != 0 {
		t.Errorf("wanted empty cache, got %d entries", len(cached))
	}
}

func TestFetchExpensesFailureLeavesCacheUntouched(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	addDinner(t, s, "t1")
	before, _ := s.CachedExpenses("t1")

	store.listErr = fmt.Errorf("connection refused")
	if _, err := s.FetchExpenses(context.Background(), "t1"); err == nil {
		t.Fatalf("wanted error from failing fetch")
	}

	after, ok := s.CachedExpenses("t1")
	if !ok || len(after) != len(before) {
		t.Errorf("failed fetch must leave the previous cache in place")
	}

	// Same when the splits query is the one that fails
	store.listErr = nil
	store.splitsErr = fmt.Errorf("connection refused")
	if _, err := s.FetchExpenses(context.Background(), "t1"); err == nil {
		t.Fatalf("wanted error from failing splits fetch")
	}
	after, ok = s.CachedExpenses("t1")
	if !ok || len(after) != len(before) {
		t.Errorf("failed splits fetch must leave the previous cache in place")
	}
}

func TestDeleteExpenseRemovesContribution(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	e := addDinner(t, s, "t1")

	members := []Member{{ID: "alice"}, {ID: "bob"}, {ID: "carol"}}
	before := makeBalanceMap(s.CalculateBalances("t1", members))
	if almostEqual(before["bob"], 0) {
		t.Fatalf("precondition: bob should owe money before the delete")
	}

	if err := s.DeleteExpense(context.Background(), e.ID); err != nil {
		t.Fatalf("DeleteExpense returned error: %v", err)
	}

	cached, _ := s.CachedExpenses("t1")
	if len(cached) != 0 {
		t.Fatalf("wanted empty cache after delete, got %d entries", len(cached))
	}

	after := makeBalanceMap(s.CalculateBalances("t1", members))
	for userID, b := range after {
		if !almostEqual(b, 0) {
			t.Errorf("balance for %s after delete: wanted 0, got %v", userID, b)
		}
	}
}

func TestDeleteExpenseNotFound(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	if err := s.DeleteExpense(context.Background(), uuid.NewString()); !errors.Is(err, ErrExpenseNotFound) {
		t.Errorf("wanted ErrExpenseNotFound, got %v", err)
	}
}

func TestSettleSplitIsOneWayAndIdempotent(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	addDinner(t, s, "t1")

	cached, _ := s.CachedExpenses("t1")
	var bobSplit *ExpenseSplit
	for _, sp := range cached[0].Splits {
		if sp.UserID == "bob" {
			bobSplit = sp
		}
	}
	if bobSplit == nil || bobSplit.IsSettled {
		t.Fatalf("precondition: bob's split should exist unsettled")
	}

	first, err := s.SettleSplit(context.Background(), bobSplit.ID)
	if err != nil {
		t.Fatalf("SettleSplit returned error: %v", err)
	}
	if !first.IsSettled || first.SettledAt == nil {
		t.Fatalf("settled split should be settled with a timestamp")
	}

	// Settling again yields the same observable state
	second, err := s.SettleSplit(context.Background(), bobSplit.ID)
	if err != nil {
		t.Fatalf("second SettleSplit returned error: %v", err)
	}
	if !second.IsSettled {
		t.Errorf("second settle must leave the split settled")
	}

	// The cache reflects the settle
	cached, _ = s.CachedExpenses("t1")
	for _, sp := range cached[0].Splits {
		if sp.UserID == "bob" && !sp.IsSettled {
			t.Errorf("cached split for bob should be settled")
		}
	}

	// And bob's debt dropped out of the balances
	members := []Member{{ID: "alice"}, {ID: "bob"}, {ID: "carol"}}
	balances := makeBalanceMap(s.CalculateBalances("t1", members))
	if !almostEqual(balances["bob"], 0) {
		t.Errorf("bob settled, wanted balance 0, got %v", balances["bob"])
	}
	if !almostEqual(balances["carol"], -10) {
		t.Errorf("carol did not settle, wanted -10, got %v", balances["carol"])
	}
}

func TestSettleSplitSafeDuringBalanceDerivation(t *testing.T) {
	// Settling a split must never mutate a snapshot a concurrent balance
	// derivation is reading. Run with the race detector.

	store := newMemStore()
	s := newTestService(store)

	addDinner(t, s, "t1")

	cached, _ := s.CachedExpenses("t1")
	var bobSplit *ExpenseSplit
	for _, sp := range cached[0].Splits {
		if sp.UserID == "bob" {
			bobSplit = sp
		}
	}
	if bobSplit == nil {
		t.Fatalf("precondition: bob's split should exist")
	}

	members := []Member{{ID: "alice"}, {ID: "bob"}, {ID: "carol"}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if _, err := s.SettleSplit(context.Background(), bobSplit.ID); err != nil {
				t.Errorf("SettleSplit returned error: %v", err)
				return
			}
		}
	}()
	for i := 0; i < 500; i++ {
		s.CalculateBalances("t1", members)
	}
	<-done

	balances := makeBalanceMap(s.CalculateBalances("t1", members))
	if !almostEqual(balances["bob"], 0) {
		t.Errorf("bob settled, wanted balance 0, got %v", balances["bob"])
	}
}

func TestSettleSplitNotFound(t *testing.T) {
	store := newMemStore()
	s := newTestService(store)

	if _, err := s.SettleSplit(context.Background(), uuid.NewString()); !errors.Is(err, ErrSplitNotFound) {
		t.Errorf("wanted ErrSplitNotFound, got %v", err)
	}
}

func TestCachedExpensesUnknownTrip(t *testing.T) {
	s := newTestService(newMemStore())

	if _, ok := s.CachedExpenses("never-fetched"); ok {
		t.Errorf("unfetched trip should report no cache")
	}
}
