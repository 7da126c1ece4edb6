package settlement

import (
	"context"
	"errors"
	"testing"

	"github.com/splitease/splitease/internal/money"
)

// fakeResolver records which ledger scope was consulted.
type fakeResolver struct {
	global   money.Amount
	inGroup  money.Amount
	calls    []string
	gotGroup int64
}

func (f *fakeResolver) Propose(ctx context.Context, payerID, payeeID int64) (money.Amount, error) {
	f.calls = append(f.calls, "global")
	return f.global, nil
}

func (f *fakeResolver) ProposeInGroup(ctx context.Context, payerID, payeeID, groupID int64) (money.Amount, error) {
	f.calls = append(f.calls, "group")
	f.gotGroup = groupID
	return f.inGroup, nil
}

// A settlement scoped to a group must reconcile against that group's ledger,
// not the pair's global one. The two can differ whenever the pair also owes
// each other outside the group.
func TestProposeScopesToGroup(t *testing.T) {
	fake := &fakeResolver{
		global:  money.FromMinorUnits(12000),
		inGroup: money.FromMinorUnits(4500),
	}
	svc := &Service{balances: fake}

	groupID := int64(7)
	got, err := svc.propose(context.Background(), 1, 2, &groupID)
	if err != nil {
		t.Fatalf("propose unexpected error: %v", err)
	}
	if got.MinorUnits() != 4500 {
		t.Errorf("propose = %d minor units, want 4500 from the group ledger", got.MinorUnits())
	}
	if len(fake.calls) != 1 || fake.calls[0] != "group" {
		t.Errorf("consulted %v, want the group ledger only", fake.calls)
	}
	if fake.gotGroup != groupID {
		t.Errorf("consulted group %d, want %d", fake.gotGroup, groupID)
	}
}

func TestProposeWithoutGroupUsesGlobalLedger(t *testing.T) {
	fake := &fakeResolver{
		global:  money.FromMinorUnits(12000),
		inGroup: money.FromMinorUnits(4500),
	}
	svc := &Service{balances: fake}

	got, err := svc.propose(context.Background(), 1, 2, nil)
	if err != nil {
		t.Fatalf("propose unexpected error: %v", err)
	}
	if got.MinorUnits() != 12000 {
		t.Errorf("propose = %d minor units, want 12000 from the global ledger", got.MinorUnits())
	}
	if len(fake.calls) != 1 || fake.calls[0] != "global" {
		t.Errorf("consulted %v, want the global ledger only", fake.calls)
	}
}

func TestResolveAmount(t *testing.T) {
	requested := func(units int64) *money.Amount {
		a := money.FromMinorUnits(units)
		return &a
	}

	tests := []struct {
		name      string
		proposed  int64
		requested *money.Amount
		want      int64
		errExp    error
	}{
		{name: "defaults to full debt", proposed: 5000, want: 5000},
		{name: "partial amount", proposed: 5000, requested: requested(2000), want: 2000},
		{name: "exact amount", proposed: 5000, requested: requested(5000), want: 5000},
		{name: "zero amount", proposed: 5000, requested: requested(0), errExp: ErrNonPositiveAmount},
		{name: "negative amount", proposed: 5000, requested: requested(-100), errExp: ErrNonPositiveAmount},
		{name: "exceeds debt", proposed: 5000, requested: requested(5001), errExp: ErrAmountExceedsDebt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveAmount(money.FromMinorUnits(tt.proposed), tt.requested)
			if tt.errExp != nil {
				if !errors.Is(err, tt.errExp) {
					t.Fatalf("resolveAmount error = %v, want %v", err, tt.errExp)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveAmount unexpected error: %v", err)
			}
			if got.MinorUnits() != tt.want {
				t.Errorf("resolveAmount = %d minor units, want %d", got.MinorUnits(), tt.want)
			}
		})
	}
}
