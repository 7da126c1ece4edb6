package split

import "fmt"

// Engine turns a raw split request into a validated Result. It performs no
// I/O and is fully deterministic: identical requests against identical
// rosters always yield identical results.
type Engine struct {
	factory *Factory
}

// NewEngine creates a split engine backed by the strategy factory.
func NewEngine(factory *Factory) *Engine {
	return &Engine{factory: factory}
}

// CreateSplit resolves the request against the group roster, dispatches to
// the strategy for the requested method, validates the computed shares and
// returns the immutable Result. Every participant id (including the payer)
// must exist in the roster.
func (e *Engine) CreateSplit(req Request, roster []Member) (*Result, error) {
	rosterIDs := make(map[int64]bool, len(roster))
	for _, m := range roster {
		rosterIDs[m.ID] = true
	}

	if !rosterIDs[req.PaidByID] {
		return nil, fmt.Errorf("%w: payer %d", ErrUnknownMember, req.PaidByID)
	}

	var included []Participant
	for _, p := range req.Participants {
		if !rosterIDs[p.UserID] {
			return nil, fmt.Errorf("%w: user %d", ErrUnknownMember, p.UserID)
		}
		if p.Included {
			included = append(included, p)
		}
	}

	strategy, err := e.factory.Create(req.Method)
	if err != nil {
		return nil, err
	}

	shares, err := strategy.Calculate(req.Total, included)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Total:    req.Total,
		PaidByID: req.PaidByID,
		Method:   req.Method,
		Shares:   shares,
	}
	if err := validateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}
