package split

// EqualStrategy divides the total evenly among everyone the expense is split
// among, payer included. The payer's share is created already settled.
type EqualStrategy struct{}

// Type returns the split type tag
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Calculate divides the total by the number of participants. Shares are the
// raw quotient: no rounding, and no redistribution of remainder cents. Those
// fractional amounts cancel out when the splits are summed back against the
// expense total, which is what the balance derivation relies on.
func (s *EqualStrategy) Calculate(totalAmount float64, paidBy string, splitAmong []string) ([]Share, error) {
	if len(splitAmong) == 0 {
		return nil, ErrNoParticipants
	}
	if totalAmount < 0 {
		return nil, ErrNegativeAmount
	}

	shareAmount := totalAmount / float64(len(splitAmong))

	shares := make([]Share, len(splitAmong))
	for i, userID := range splitAmong {
		shares[i] = Share{
			UserID:  userID,
			Amount:  shareAmount,
			Settled: userID == paidBy,
		}
	}

	return shares, nil
}
