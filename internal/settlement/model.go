package settlement

import (
	"time"

	"github.com/splitease/splitease/internal/money"
)

// Settlement records a repayment between two users. It is an immediate
// fact: once recorded it reduces the pairwise debt, with no confirmation
// handshake.
type Settlement struct {
	ID        int64        `json:"id"`
	GroupID   *int64       `json:"group_id,omitempty"`
	PayerID   int64        `json:"payer_id"`
	PayeeID   int64        `json:"payee_id"`
	Amount    money.Amount `json:"amount"`
	Note      *string      `json:"note,omitempty"`
	CreatedAt time.Time    `json:"created_at"`

	// Populated from JOIN
	PayerUsername string `json:"payer_username,omitempty"`
	PayeeUsername string `json:"payee_username,omitempty"`
}
