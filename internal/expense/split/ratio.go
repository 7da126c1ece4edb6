package split

import "github.com/splitease/splitease/internal/money"

// RatioStrategy divides the expense proportionally to per-participant integer
// ratios. A participant without an explicit ratio counts as 1.
type RatioStrategy struct{}

// Method returns the split method identifier.
func (s *RatioStrategy) Method() Method {
	return MethodRatio
}

// Validate checks if the inputs are valid for a ratio split.
func (s *RatioStrategy) Validate(total money.Amount, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	for _, p := range participants {
		if p.Ratio != nil && *p.Ratio <= 0 {
			return ErrInvalidRatio
		}
	}
	return nil
}

// Calculate divides the total by each participant's ratio weight. Leftover
// cents go to the earliest participants, same as the equal split.
func (s *RatioStrategy) Calculate(total money.Amount, participants []Participant) ([]Share, error) {
	if err := s.Validate(total, participants); err != nil {
		return nil, err
	}

	weights := make([]int, len(participants))
	for i, p := range participants {
		weights[i] = ratioOf(p)
	}

	parts, err := total.ProportionalSplit(weights)
	if err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p.UserID, Amount: parts[i]}
	}
	return shares, nil
}

func ratioOf(p Participant) int {
	if p.Ratio == nil {
		return 1
	}
	return *p.Ratio
}
