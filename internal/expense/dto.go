package expense

import (
	"github.com/splitease/splitease/internal/expense/split"
	"github.com/splitease/splitease/internal/money"
)

// The request/response field names below are the REST contract the Splitease
// frontend already speaks (camelCase, splittingType/participantIds/ratios/
// splits) and must not change shape.

// RatioEntry is one participant's weight in a Ratio split.
type RatioEntry struct {
	UserID int64 `json:"userId"`
	Ratio  int   `json:"ratio"`
}

// ShareEntry is one participant's explicit amount in a Custom split.
type ShareEntry struct {
	UserID int64        `json:"userId"`
	Share  money.Amount `json:"share"`
}

// CreateExpenseRequest represents the request to create or edit an expense.
// Exactly one of ParticipantIDs/Ratios/Splits is meaningful depending on
// SplittingType; an Equal split with no ParticipantIDs includes the whole
// group roster.
type CreateExpenseRequest struct {
	Description    string       `json:"description" validate:"required,min=1,max=255"`
	Amount         money.Amount `json:"amount" validate:"required"`
	GroupID        int64        `json:"groupId" validate:"required"`
	PaidByID       int64        `json:"paidById" validate:"required"`
	SplittingType  string       `json:"splittingType" validate:"required,oneof=Equal Ratio Custom"`
	ParticipantIDs []int64      `json:"participantIds,omitempty"`
	Ratios         []RatioEntry `json:"ratios,omitempty"`
	Splits         []ShareEntry `json:"splits,omitempty"`
}

// ToSplitRequest converts the wire payload into a split request. Participants
// are laid out in roster order so remainder distribution is deterministic.
func (r *CreateExpenseRequest) ToSplitRequest(roster []split.Member) split.Request {
	req := split.Request{
		Total:    r.Amount,
		PaidByID: r.PaidByID,
		Method:   split.Method(r.SplittingType),
	}

	switch req.Method {
	case split.MethodRatio:
		ratios := make(map[int64]int, len(r.Ratios))
		for _, e := range r.Ratios {
			ratios[e.UserID] = e.Ratio
		}
		for _, m := range roster {
			if ratio, ok := ratios[m.ID]; ok {
				req.Participants = append(req.Participants, split.Participant{
					UserID: m.ID, Included: true, Ratio: &ratio,
				})
			}
		}
	case split.MethodCustom:
		shares := make(map[int64]money.Amount, len(r.Splits))
		for _, e := range r.Splits {
			shares[e.UserID] = e.Share
		}
		for _, m := range roster {
			if share, ok := shares[m.ID]; ok {
				req.Participants = append(req.Participants, split.Participant{
					UserID: m.ID, Included: true, Share: &share,
				})
			}
		}
	default:
		// Equal: all roster members unless participantIds narrows the set.
		included := make(map[int64]bool, len(r.ParticipantIDs))
		for _, id := range r.ParticipantIDs {
			included[id] = true
		}
		for _, m := range roster {
			req.Participants = append(req.Participants, split.Participant{
				UserID:   m.ID,
				Included: len(r.ParticipantIDs) == 0 || included[m.ID],
			})
		}
	}

	// Anything the frontend referenced that is not on the roster still has to
	// surface as an unknown-member error, not vanish silently.
	onRoster := make(map[int64]bool, len(roster))
	for _, m := range roster {
		onRoster[m.ID] = true
	}
	for _, id := range r.referencedIDs() {
		if !onRoster[id] {
			req.Participants = append(req.Participants, split.Participant{UserID: id, Included: true})
		}
	}

	return req
}

func (r *CreateExpenseRequest) referencedIDs() []int64 {
	var ids []int64
	ids = append(ids, r.ParticipantIDs...)
	for _, e := range r.Ratios {
		ids = append(ids, e.UserID)
	}
	for _, e := range r.Splits {
		ids = append(ids, e.UserID)
	}
	return ids
}

// ExpenseResponse represents the response for an expense, shares included.
type ExpenseResponse struct {
	ID            int64        `json:"id"`
	GroupID       int64        `json:"groupId"`
	PaidByID      int64        `json:"paidById"`
	PayerUsername string       `json:"payerUsername,omitempty"`
	Description   string       `json:"description"`
	Amount        money.Amount `json:"amount"`
	SplittingType string       `json:"splittingType"`
	CreatedAt     string       `json:"createdAt"`
	Splits        []ShareEntry `json:"splits,omitempty"`
}

// ToResponse converts an Expense model to its wire shape.
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:            e.ID,
		GroupID:       e.GroupID,
		PaidByID:      e.PaidByID,
		PayerUsername: e.PayerUsername,
		Description:   e.Description,
		Amount:        e.Amount,
		SplittingType: string(e.SplitMethod),
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
