package split

import (
	"errors"
	"fmt"

	"github.com/splitease/splitease/internal/money"
)

// Method identifies how an expense is divided among participants.
type Method string

const (
	MethodEqual  Method = "Equal"
	MethodRatio  Method = "Ratio"
	MethodCustom Method = "Custom"
)

// Common errors
var (
	ErrNoParticipants         = errors.New("at least one included participant is required")
	ErrInvalidRatio           = errors.New("ratio must be a positive integer")
	ErrMissingShare           = errors.New("custom share required for every included participant")
	ErrUnknownMember          = errors.New("participant is not a member of the group")
	ErrReconciliationMismatch = errors.New("shares do not sum to the expense total")
)

// Member is one person eligible to take part in a split. The roster is owned
// by the caller; the split engine never creates or removes members.
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Participant is one member's row in a split request. Ratio and Share are
// only meaningful for the Ratio and Custom methods respectively; a nil Ratio
// defaults to 1.
type Participant struct {
	UserID   int64         `json:"user_id"`
	Included bool          `json:"included"`
	Ratio    *int          `json:"ratio,omitempty"`
	Share    *money.Amount `json:"share,omitempty"`
}

// Request is a one-shot expense split request built from form state. It is
// consumed once by the engine and then discarded; edits construct a fresh
// Request and recompute the whole split.
type Request struct {
	Total        money.Amount  `json:"total"`
	PaidByID     int64         `json:"paid_by_id"`
	Method       Method        `json:"method"`
	Participants []Participant `json:"participants"`
}

// Share is one participant's computed portion of an expense.
type Share struct {
	UserID int64        `json:"user_id"`
	Amount money.Amount `json:"amount"`
}

// Result is a validated split: exactly one share per included participant,
// and the shares sum exactly to Total.
type Result struct {
	Total    money.Amount `json:"total"`
	PaidByID int64        `json:"paid_by_id"`
	Method   Method       `json:"method"`
	Shares   []Share      `json:"shares"`
}

// Strategy is the interface all split strategies implement. Calculate
// receives only the included participants, in roster order.
type Strategy interface {
	// Calculate computes one share per participant.
	Calculate(total money.Amount, participants []Participant) ([]Share, error)

	// Method returns the method identifier for this strategy.
	Method() Method

	// Validate checks if the inputs are valid for this strategy.
	Validate(total money.Amount, participants []Participant) error
}

// Factory creates split strategies based on the requested method.
type Factory struct{}

// NewFactory creates a new strategy factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given method.
func (f *Factory) Create(method Method) (Strategy, error) {
	switch method {
	case MethodEqual:
		return &EqualStrategy{}, nil
	case MethodRatio:
		return &RatioStrategy{}, nil
	case MethodCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split method: %s", method)
	}
}

// CreateFromString creates a strategy from a string method (useful for API requests).
func (f *Factory) CreateFromString(method string) (Strategy, error) {
	return f.Create(Method(method))
}
