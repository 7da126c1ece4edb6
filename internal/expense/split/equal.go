package split

import "github.com/splitease/splitease/internal/money"

// EqualStrategy divides the expense evenly among all included participants.
// Remainder cents left by integer division go to the earliest participants in
// roster order, so shares always sum exactly to the total.
type EqualStrategy struct{}

// Method returns the split method identifier.
func (s *EqualStrategy) Method() Method {
	return MethodEqual
}

// Validate checks if the inputs are valid for an equal split.
func (s *EqualStrategy) Validate(total money.Amount, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	return nil
}

// Calculate divides the total evenly among all participants.
func (s *EqualStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	parts, err := total.EqualSplit(len(participants))
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: parts[i]}
	}
	return shares, nil
}
