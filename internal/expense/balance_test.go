package expense

import (
	"math"
	"testing"
)

const float64EqualityThreshold = 1e-9

// almostEqual compares two floats
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func makeBalanceMap(balances []BalanceSummary) map[string]float64 {
	m := make(map[string]float64, len(balances))
	for _, b := range balances {
		m[b.UserID] = b.Balance
	}
	return m
}

var roster = []Member{
	{ID: "alice", DisplayName: "Alice"},
	{ID: "bob", DisplayName: "Bob"},
	{ID: "carol", DisplayName: "Carol"},
}

// dinner builds a 30 unit expense paid by alice, split three ways. Settlement
// flags are set per user; pass the payer to model a freshly created expense
// (the payer's share row is born settled).
func dinner(settledUsers ...string) *ExpenseWithSplits {
	settled := map[string]bool{}
	for _, u := range settledUsers {
		settled[u] = true
	}

	e := &Expense{ID: "e1", TripID: "t1", Amount: 30, PaidBy: "alice"}
	splits := []*ExpenseSplit{
		{ID: "s1", ExpenseID: "e1", UserID: "alice", Amount: 10, IsSettled: settled["alice"]},
		{ID: "s2", ExpenseID: "e1", UserID: "bob", Amount: 10, IsSettled: settled["bob"]},
		{ID: "s3", ExpenseID: "e1", UserID: "carol", Amount: 10, IsSettled: settled["carol"]},
	}
	return &ExpenseWithSplits{Expense: e, Splits: splits}
}

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []*ExpenseWithSplits
		want     map[string]float64
	}{
		{
			// Alice paid 30 for dinner split three ways, nothing settled.
			// Her own split credits her the 20 the others owe; Bob and
			// Carol each carry their 10 share as debt.
			"dinner all unsettled",
			[]*ExpenseWithSplits{dinner()},
			map[string]float64{"alice": 20, "bob": -10, "carol": -10},
		},
		{
			// Settled splits are skipped outright. That includes the
			// payer's own share, so once it settles the payer-credit
			// branch never runs for this expense.
			"dinner with payer share settled",
			[]*ExpenseWithSplits{dinner("alice")},
			map[string]float64{"alice": 0, "bob": -10, "carol": -10},
		},
		{
			// Bob settles his share: his 10 debt drops out
			"dinner after bob settles",
			[]*ExpenseWithSplits{dinner("alice", "bob")},
			map[string]float64{"alice": 0, "bob": 0, "carol": -10},
		},
		{
			// Everyone settled: the expense contributes exactly zero
			"dinner fully settled",
			[]*ExpenseWithSplits{dinner("alice", "bob", "carol")},
			map[string]float64{"alice": 0, "bob": 0, "carol": 0},
		},
		{
			"no expenses",
			nil,
			map[string]float64{"alice": 0, "bob": 0, "carol": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := makeBalanceMap(CalculateBalances(tt.expenses, roster))
			if len(got) != len(tt.want) {
				t.Fatalf("wanted %d balances, got %d", len(tt.want), len(got))
			}
			for userID, want := range tt.want {
				if !almostEqual(got[userID], want) {
					t.Errorf("balance for %s: wanted %v, got %v", userID, want, got[userID])
				}
			}
		})
	}
}

func TestCalculateBalancesZeroSum(t *testing.T) {
	// With every split unsettled and every payer inside their own split set,
	// balances net to zero across the roster, even with indivisible amounts
	// and multiple payers.

	expenses := []*ExpenseWithSplits{
		{
			Expense: &Expense{ID: "e1", TripID: "t1", Amount: 10, PaidBy: "alice"},
			Splits: []*ExpenseSplit{
				{ExpenseID: "e1", UserID: "alice", Amount: 10.0 / 3},
				{ExpenseID: "e1", UserID: "bob", Amount: 10.0 / 3},
				{ExpenseID: "e1", UserID: "carol", Amount: 10.0 / 3},
			},
		},
		{
			Expense: &Expense{ID: "e2", TripID: "t1", Amount: 7.5, PaidBy: "bob"},
			Splits: []*ExpenseSplit{
				{ExpenseID: "e2", UserID: "alice", Amount: 3.75},
				{ExpenseID: "e2", UserID: "bob", Amount: 3.75},
			},
		},
	}

	sum := 0.0
	for _, b := range CalculateBalances(expenses, roster) {
		sum += b.Balance
	}
	if !almostEqual(sum, 0) {
		t.Errorf("balances sum to %v, wanted 0", sum)
	}
}

func TestCalculateBalancesPayerOutsideSplits(t *testing.T) {
	// Only splits move balances: a payer with no split row of their own gets
	// no credit for the expense however much the others owe.

	expenses := []*ExpenseWithSplits{
		{
			Expense: &Expense{ID: "e1", TripID: "t1", Amount: 20, PaidBy: "alice"},
			Splits: []*ExpenseSplit{
				{ExpenseID: "e1", UserID: "bob", Amount: 10},
				{ExpenseID: "e1", UserID: "carol", Amount: 10},
			},
		},
	}

	got := makeBalanceMap(CalculateBalances(expenses, roster))
	if !almostEqual(got["alice"], 0) {
		t.Errorf("alice has no split so her balance stays 0, got %v", got["alice"])
	}
	if !almostEqual(got["bob"], -10) || !almostEqual(got["carol"], -10) {
		t.Errorf("wanted bob=-10 carol=-10, got bob=%v carol=%v", got["bob"], got["carol"])
	}
}

func TestCalculateBalancesRosterOrder(t *testing.T) {
	// Output follows roster order and every member appears even without
	// expense activity

	balances := CalculateBalances(nil, roster)
	if len(balances) != len(roster) {
		t.Fatalf("wanted %d balances, got %d", len(roster), len(balances))
	}
	for i, b := range balances {
		if b.UserID != roster[i].ID {
			t.Errorf("position %d: wanted %s, got %s", i, roster[i].ID, b.UserID)
		}
		if b.UserName != roster[i].DisplayName {
			t.Errorf("position %d: wanted name %s, got %s", i, roster[i].DisplayName, b.UserName)
		}
	}
}
