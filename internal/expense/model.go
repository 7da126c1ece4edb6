package expense

import (
	"time"

	"github.com/splitease/splitease/internal/expense/split"
	"github.com/splitease/splitease/internal/money"
)

// Expense represents a shared expense in a group.
type Expense struct {
	ID          int64        `json:"id"`
	GroupID     int64        `json:"group_id"`
	PaidByID    int64        `json:"paid_by_id"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	SplitMethod split.Method `json:"split_method"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Populated via JOIN
	PayerUsername string `json:"payer_username,omitempty"`
}

// Share is one member's persisted portion of an expense. Every included
// participant of the split has exactly one row, the payer included.
type Share struct {
	ID        int64        `json:"id"`
	ExpenseID int64        `json:"expense_id"`
	UserID    int64        `json:"user_id"`
	Amount    money.Amount `json:"amount"`
	Ratio     *int         `json:"ratio,omitempty"`

	// Populated via JOIN
	Username string `json:"username,omitempty"`
}

// ExpenseWithShares combines an expense with its share rows.
type ExpenseWithShares struct {
	Expense *Expense
	Shares  []*Share
}
