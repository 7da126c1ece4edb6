package balance

import (
	"time"

	"github.com/splitease/splitease/internal/money"
)

// SourceKind tags where a ledger entry came from.
type SourceKind string

const (
	SourceExpense    SourceKind = "EXPENSE"
	SourceSettlement SourceKind = "SETTLEMENT"
)

// LedgerEntry is one signed contribution to a pairwise balance. Expense
// entries mean From owes To the amount; settlement entries mean From paid To
// and reduce that debt. Entries are append-only facts and are never mutated.
type LedgerEntry struct {
	FromUserID int64        `json:"from_user_id"`
	ToUserID   int64        `json:"to_user_id"`
	Amount     money.Amount `json:"amount"`
	Kind       SourceKind   `json:"kind"`
	CreatedAt  time.Time    `json:"created_at"`
}

// Pairwise is the net balance between two members. MemberA is always the
// lower id; a positive Net means MemberA is owed by MemberB.
type Pairwise struct {
	MemberA int64        `json:"member_a"`
	MemberB int64        `json:"member_b"`
	Net     money.Amount `json:"net"`
}

// MemberNet is one member's net position inside a group. Positive = owed
// money, negative = owes money.
type MemberNet struct {
	UserID int64        `json:"user_id"`
	Net    money.Amount `json:"net"`
}

// GroupSummary is the per-member balance breakdown for one group.
// Outstanding is the total unsettled value in the group (the sum of the
// positive member nets).
type GroupSummary struct {
	PerMember   []MemberNet  `json:"per_member"`
	Outstanding money.Amount `json:"outstanding"`
}
