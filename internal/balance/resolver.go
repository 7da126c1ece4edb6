package balance

import (
	"errors"

	"github.com/splitease/splitease/internal/money"
)

// ErrAlreadySettled is returned when a settlement is proposed between two
// members whose net balance is exactly zero.
var ErrAlreadySettled = errors.New("already settled up - nothing to settle")

// ProposeSettlement computes the amount that would zero the pairwise balance
// between payer and payee. The returned amount is always positive; direction
// is fixed by the arguments.
func ProposeSettlement(pairs []Pairwise, payerID, payeeID int64) (money.Amount, error) {
	net := Between(pairs, payerID, payeeID)
	if net.IsZero() {
		return money.Zero, ErrAlreadySettled
	}
	return net.Abs(), nil
}
