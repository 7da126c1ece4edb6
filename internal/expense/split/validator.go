package split

import (
	"fmt"

	"github.com/splitease/splitease/internal/money"
)

// validateResult checks a computed split against the expense total.
//
// For Custom splits the entered shares must sum to the total exactly; the
// integer minor-unit representation makes exact comparison meaningful, so
// there is no tolerance. Equal and Ratio results hold the invariant by
// construction; a mismatch there is an internal bug, not caller input.
//
// The payer is allowed to be absent from the shares: a person can pay for an
// expense without being a beneficiary of it.
func validateResult(result *Result) error {
	var sum int64
	for _, share := range result.Shares {
		sum += share.Amount.MinorUnits()
	}
	if sum == result.Total.MinorUnits() {
		return nil
	}
	if result.Method == MethodCustom {
		return fmt.Errorf("%w: shares total %s, expense total %s",
			ErrReconciliationMismatch, money.FromMinorUnits(sum), result.Total)
	}
	return fmt.Errorf("internal: %s split of %s does not reconcile", result.Method, result.Total)
}
