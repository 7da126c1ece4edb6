package balance

import "github.com/splitease/splitease/internal/money"

// FriendBalanceResponse is the net position against a friend
type FriendBalanceResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Net      string `json:"net"`
	Message  string `json:"message"`
}

// PairwiseResponse is the net between two members
type PairwiseResponse struct {
	MemberA int64  `json:"memberA"`
	MemberB int64  `json:"memberB"`
	Net     string `json:"net"`
}

// MemberNetResponse is one member's net position in a group
type MemberNetResponse struct {
	UserID int64  `json:"userId"`
	Net    string `json:"net"`
}

// GroupBalancesResponse summarizes a group's balances
type GroupBalancesResponse struct {
	PerMember   []MemberNetResponse `json:"perMember"`
	Pairwise    []PairwiseResponse  `json:"pairwise"`
	Outstanding string              `json:"outstanding"`
}

// WithUserResponse is the net position against one other user
type WithUserResponse struct {
	UserID  int64  `json:"userId"`
	Net     string `json:"net"`
	Message string `json:"message"`
}

// balanceMessage renders a human-readable summary of a signed net amount,
// from the calling user's perspective.
func balanceMessage(name string, net money.Amount) string {
	switch {
	case net.IsZero():
		return "You are settled up with " + name
	case net.Cmp(money.Zero) > 0:
		return name + " owes you " + net.String()
	default:
		return "You owe " + name + " " + net.Neg().String()
	}
}

func toFriendBalanceResponse(b FriendBalance) FriendBalanceResponse {
	return FriendBalanceResponse{
		UserID:   b.UserID,
		Username: b.Username,
		Net:      b.Net.String(),
		Message:  balanceMessage(b.Username, b.Net),
	}
}

func toPairwiseResponse(p Pairwise) PairwiseResponse {
	return PairwiseResponse{
		MemberA: p.MemberA,
		MemberB: p.MemberB,
		Net:     p.Net.String(),
	}
}
