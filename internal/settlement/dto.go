package settlement

import "github.com/splitease/splitease/internal/money"

// CreateSettlementRequest represents the request to record a settlement.
// The caller is always the payer. When Amount is omitted, the full
// outstanding debt with the other user is settled.
type CreateSettlementRequest struct {
	OtherUserID int64         `json:"otherUserId" validate:"required"`
	Amount      *money.Amount `json:"amount,omitempty"`
	GroupID     *int64        `json:"groupId,omitempty"`
	Note        *string       `json:"note,omitempty"`
}

// SettlementResponse represents a settlement in API responses
type SettlementResponse struct {
	ID            int64   `json:"id"`
	GroupID       *int64  `json:"groupId,omitempty"`
	PayerID       int64   `json:"payerId"`
	PayerUsername string  `json:"payerUsername,omitempty"`
	PayeeID       int64   `json:"payeeId"`
	PayeeUsername string  `json:"payeeUsername,omitempty"`
	Amount        string  `json:"amount"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:            s.ID,
		GroupID:       s.GroupID,
		PayerID:       s.PayerID,
		PayerUsername: s.PayerUsername,
		PayeeID:       s.PayeeID,
		PayeeUsername: s.PayeeUsername,
		Amount:        s.Amount.String(),
		Note:          s.Note,
		CreatedAt:     s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
