package split

import "github.com/splitease/splitease/internal/money"

// CustomStrategy passes through explicitly entered per-participant shares.
// It computes nothing itself; reconciliation against the total happens in the
// validator.
type CustomStrategy struct{}

// Method returns the split method identifier.
func (s *CustomStrategy) Method() Method {
	return MethodCustom
}

// Validate checks that every included participant carries a non-negative
// share. Reconciliation alone cannot catch a negative share: {-10.00,
// 110.00} still sums to 100.00.
func (s *CustomStrategy) Validate(total money.Amount, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	for _, p := range participants {
		if p.Share == nil {
			return ErrMissingShare
		}
		if p.Share.Cmp(money.Zero) < 0 {
			return money.ErrInvalidAmount
		}
	}
	return nil
}

// Calculate returns the shares exactly as entered.
func (s *CustomStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: *p.Share}
	}
	return shares, nil
}
