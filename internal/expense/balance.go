package expense

// CalculateBalances derives one signed net balance per roster member from a
// snapshot of expenses with their splits. This is the heart of the expense
// engine. Settled splits contribute nothing. When a split belongs to the
// expense's payer, the payer is credited the total minus their own share
// (what everyone else owes them); every other split debits its member by the
// share amount. A payer who isn't in the split set gets no credit for that
// expense: only splits move balances.
func CalculateBalances(expenses []*ExpenseWithSplits, members []Member) []BalanceSummary {
	balanceMap := make(map[string]float64, len(members))
	for _, m := range members {
		balanceMap[m.ID] = 0
	}

	for _, ews := range expenses {
		payerID := ews.Expense.PaidBy

		for _, sp := range ews.Splits {
			if sp.IsSettled {
				continue
			}

			if sp.UserID == payerID {
				balanceMap[payerID] += ews.Expense.Amount - sp.Amount
			} else {
				balanceMap[sp.UserID] -= sp.Amount
			}
		}
	}

	balances := make([]BalanceSummary, len(members))
	for i, m := range members {
		balances[i] = BalanceSummary{
			UserID:   m.ID,
			UserName: m.DisplayName,
			Balance:  balanceMap[m.ID],
		}
	}

	return balances
}

// CalculateBalances recomputes balances for a trip against whatever the
// ledger currently has cached. Callers re-invoke it whenever the expense set
// or the roster changes; nothing is stored.
func (s *Service) CalculateBalances(tripID string, members []Member) []BalanceSummary {
	cached, _ := s.CachedExpenses(tripID)
	return CalculateBalances(cached, members)
}
