package expense

import (
	"context"
	"errors"
	"sync"

	"github.com/tripmate/api/internal/expense/split"
	"github.com/tripmate/api/internal/realtime"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrSplitNotFound   = errors.New("split not found")
)

// Service is the expense ledger. It owns the durable expense/split records
// through the Store and keeps an in-memory cache of each trip's expenses with
// nested splits and payer identity. The cache is the thing the balance
// derivation and the display layer read; the database stays the source of
// truth and every refresh overwrites the cache wholesale (last fetch wins).
type Service struct {
	store        Store
	splitFactory *split.Factory
	pub          realtime.Publisher

	mu    sync.RWMutex
	cache map[string][]*ExpenseWithSplits // keyed by trip ID
}

// NewService creates a new expense service
func NewService(store Store, splitFactory *split.Factory, pub realtime.Publisher) *Service {
	if pub == nil {
		pub = realtime.NopPublisher{}
	}
	return &Service{
		store:        store,
		splitFactory: splitFactory,
		pub:          pub,
		cache:        make(map[string][]*ExpenseWithSplits),
	}
}

// FetchExpenses loads a trip's expenses newest first, then their splits, and
// replaces the trip's cache with the assembled result. On any retrieval error
// the cache is left untouched; a failed expense fetch never triggers a splits
// fetch. Zero expenses set the cache empty without querying splits.
func (s *Service) FetchExpenses(ctx context.Context, tripID string) ([]*ExpenseWithSplits, error) {
	expenses, err := s.store.ListExpensesByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	if len(expenses) == 0 {
		s.setCache(tripID, []*ExpenseWithSplits{})
		return []*ExpenseWithSplits{}, nil
	}

	expenseIDs := make([]string, len(expenses))
	for i, e := range expenses {
		expenseIDs[i] = e.ID
	}

	splits, err := s.store.GetSplitsByExpenseIDs(ctx, expenseIDs)
	if err != nil {
		return nil, err
	}

	byExpense := make(map[string][]*ExpenseSplit, len(expenses))
	for _, sp := range splits {
		byExpense[sp.ExpenseID] = append(byExpense[sp.ExpenseID], sp)
	}

	assembled := make([]*ExpenseWithSplits, len(expenses))
	for i, e := range expenses {
		assembled[i] = &ExpenseWithSplits{
			Expense: e,
			Splits:  byExpense[e.ID],
		}
	}

	s.setCache(tripID, assembled)
	return assembled, nil
}

// CachedExpenses returns the trip's current cache snapshot. The second return
// reports whether the trip has been fetched at all.
func (s *Service) CachedExpenses(tripID string) ([]*ExpenseWithSplits, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached, ok := s.cache[tripID]
	if !ok {
		return nil, false
	}
	snapshot := make([]*ExpenseWithSplits, len(cached))
	copy(snapshot, cached)
	return snapshot, true
}

func (s *Service) setCache(tripID string, expenses []*ExpenseWithSplits) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[tripID] = expenses
}

// AddExpense records an expense and its computed splits, then reloads the
// trip's cache so the nested splits and payer identity are populated. The
// ledger persists what it is given: amount and description validation is the
// caller's job.
func (s *Service) AddExpense(ctx context.Context, req *CreateExpenseRequest) (*Expense, error) {
	if req.SplitType == "" {
		req.SplitType = string(split.TypeEqual)
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.Amount, req.PaidBy, req.SplitAmong)
	if err != nil {
		return nil, err
	}

	e, err := s.store.CreateExpenseWithSplits(ctx, req, shares)
	if err != nil {
		return nil, err
	}

	s.pub.Publish(realtime.NewEvent(req.TripID, realtime.TableExpenses, realtime.ActionInsert))

	// A failed refresh is corrected by the next fetch; the insert succeeded.
	s.FetchExpenses(ctx, req.TripID)

	return e, nil
}

// DeleteExpense removes an expense. The store cascades the splits; the cache
// drops the expense (and with it its nested splits) only after the delete
// succeeds.
func (s *Service) DeleteExpense(ctx context.Context, expenseID string) error {
	e, err := s.store.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return err
	}

	s.mu.Lock()
	if cached, ok := s.cache[e.TripID]; ok {
		kept := cached[:0:0]
		for _, ews := range cached {
			if ews.Expense.ID != expenseID {
				kept = append(kept, ews)
			}
		}
		s.cache[e.TripID] = kept
	}
	s.mu.Unlock()

	s.pub.Publish(realtime.NewEvent(e.TripID, realtime.TableExpenses, realtime.ActionDelete))
	return nil
}

// SettleSplit marks one member's share as paid. The transition is one-way;
// settling twice is observably idempotent. Cached slices and the expenses
// inside them are shared with snapshot holders, so the affected entry is
// rebuilt and swapped in rather than mutated in place.
func (s *Service) SettleSplit(ctx context.Context, splitID string) (*ExpenseSplit, error) {
	updated, err := s.store.SettleSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrSplitNotFound
	}

	var tripID string
	s.mu.Lock()
	for id, cached := range s.cache {
		for i, ews := range cached {
			for j, sp := range ews.Splits {
				if sp.ID == splitID {
					splits := make([]*ExpenseSplit, len(ews.Splits))
					copy(splits, ews.Splits)
					splits[j] = updated

					next := make([]*ExpenseWithSplits, len(cached))
					copy(next, cached)
					next[i] = &ExpenseWithSplits{Expense: ews.Expense, Splits: splits}

					s.cache[id] = next
					tripID = id
				}
			}
		}
	}
	s.mu.Unlock()

	if tripID == "" {
		// Split wasn't cached; resolve the trip for the change event.
		if e, err := s.store.GetExpenseByID(ctx, updated.ExpenseID); err == nil && e != nil {
			tripID = e.TripID
		}
	}
	if tripID != "" {
		s.pub.Publish(realtime.NewEvent(tripID, realtime.TableExpenseSplits, realtime.ActionUpdate))
	}

	return updated, nil
}

// WatchChanges subscribes the ledger to the change feed: any event touching
// the expenses or expense_splits tables triggers a full reload for that trip.
// Every notification is a coarse refetch, no diffing.
func (s *Service) WatchChanges(ctx context.Context, hub *realtime.Hub) {
	sub := hub.Subscribe("")
	go func() {
		defer hub.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-sub.C:
				if !ok {
					return
				}
				if e.Table != realtime.TableExpenses && e.Table != realtime.TableExpenseSplits {
					continue
				}
				s.FetchExpenses(ctx, e.TripID)
			}
		}
	}()
}
