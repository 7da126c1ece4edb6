package balance

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/splitease/splitease/internal/money"
)

func expenseEntry(from, to, units int64) LedgerEntry {
	return LedgerEntry{
		FromUserID: from,
		ToUserID:   to,
		Amount:     money.FromMinorUnits(units),
		Kind:       SourceExpense,
	}
}

func settlementEntry(from, to, units int64) LedgerEntry {
	return LedgerEntry{
		FromUserID: from,
		ToUserID:   to,
		Amount:     money.FromMinorUnits(units),
		Kind:       SourceSettlement,
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name    string
		entries []LedgerEntry
		want    []Pairwise
	}{
		{
			name:    "single debt",
			entries: []LedgerEntry{expenseEntry(2, 1, 5000)},
			want:    []Pairwise{{MemberA: 1, MemberB: 2, Net: money.FromMinorUnits(5000)}},
		},
		{
			name: "opposing debts cancel partially",
			entries: []LedgerEntry{
				expenseEntry(2, 1, 5000),
				expenseEntry(1, 2, 2000),
			},
			want: []Pairwise{{MemberA: 1, MemberB: 2, Net: money.FromMinorUnits(3000)}},
		},
		{
			name: "settlement reduces the debt",
			entries: []LedgerEntry{
				expenseEntry(2, 1, 5000),
				settlementEntry(2, 1, 5000),
			},
			want: []Pairwise{{MemberA: 1, MemberB: 2, Net: money.Zero}},
		},
		{
			name: "multiple pairs sorted",
			entries: []LedgerEntry{
				expenseEntry(3, 1, 1000),
				expenseEntry(2, 1, 2000),
				expenseEntry(3, 2, 4000),
			},
			want: []Pairwise{
				{MemberA: 1, MemberB: 2, Net: money.FromMinorUnits(2000)},
				{MemberA: 1, MemberB: 3, Net: money.FromMinorUnits(1000)},
				{MemberA: 2, MemberB: 3, Net: money.FromMinorUnits(4000)},
			},
		},
		{
			name:    "no entries",
			entries: nil,
			want:    []Pairwise{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.entries)
			assertPairs(t, got, tt.want)
		})
	}
}

// The fold is associative and commutative, so any permutation of the same
// entries must produce the same pairwise balances.
func TestAggregatePermutationInvariant(t *testing.T) {
	entries := []LedgerEntry{
		expenseEntry(2, 1, 3334),
		expenseEntry(3, 1, 3333),
		expenseEntry(1, 2, 1500),
		settlementEntry(2, 1, 1000),
		expenseEntry(3, 2, 275),
		settlementEntry(3, 1, 2333),
	}

	want := Aggregate(entries)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := append([]LedgerEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assertPairs(t, Aggregate(shuffled), want)
	}
}

func TestBetween(t *testing.T) {
	pairs := Aggregate([]LedgerEntry{expenseEntry(2, 1, 5000)})

	if got := Between(pairs, 1, 2); got.MinorUnits() != 5000 {
		t.Errorf("Between(1,2) = %d, want 5000", got.MinorUnits())
	}
	if got := Between(pairs, 2, 1); got.MinorUnits() != -5000 {
		t.Errorf("Between(2,1) = %d, want -5000", got.MinorUnits())
	}
	if got := Between(pairs, 1, 3); !got.IsZero() {
		t.Errorf("Between(1,3) = %d, want 0", got.MinorUnits())
	}
}

func TestSummarize(t *testing.T) {
	// User 1 paid a 100.00 expense split equally across 1,2,3.
	pairs := Aggregate([]LedgerEntry{
		expenseEntry(2, 1, 3333),
		expenseEntry(3, 1, 3333),
	})

	summary := Summarize(pairs, []int64{1, 2, 3})

	wantNets := map[int64]int64{1: 6666, 2: -3333, 3: -3333}
	if len(summary.PerMember) != 3 {
		t.Fatalf("got %d member nets, want 3", len(summary.PerMember))
	}
	for _, m := range summary.PerMember {
		if m.Net.MinorUnits() != wantNets[m.UserID] {
			t.Errorf("net for user %d = %d, want %d", m.UserID, m.Net.MinorUnits(), wantNets[m.UserID])
		}
	}
	if summary.Outstanding.MinorUnits() != 6666 {
		t.Errorf("Outstanding = %d, want 6666", summary.Outstanding.MinorUnits())
	}
}

func TestSummarizeIgnoresOutsiders(t *testing.T) {
	pairs := Aggregate([]LedgerEntry{
		expenseEntry(2, 1, 1000),
		expenseEntry(9, 1, 7777), // user 9 is not in the group
	})

	summary := Summarize(pairs, []int64{1, 2})

	wantNets := map[int64]int64{1: 1000, 2: -1000}
	for _, m := range summary.PerMember {
		if m.Net.MinorUnits() != wantNets[m.UserID] {
			t.Errorf("net for user %d = %d, want %d", m.UserID, m.Net.MinorUnits(), wantNets[m.UserID])
		}
	}
	if summary.Outstanding.MinorUnits() != 1000 {
		t.Errorf("Outstanding = %d, want 1000", summary.Outstanding.MinorUnits())
	}
}

func TestProposeSettlement(t *testing.T) {
	pairs := Aggregate([]LedgerEntry{expenseEntry(2, 1, 5000)})

	// Direction does not change the proposed magnitude.
	for _, pair := range [][2]int64{{2, 1}, {1, 2}} {
		got, err := ProposeSettlement(pairs, pair[0], pair[1])
		if err != nil {
			t.Fatalf("ProposeSettlement(%d,%d) unexpected error: %v", pair[0], pair[1], err)
		}
		if got.MinorUnits() != 5000 {
			t.Errorf("ProposeSettlement(%d,%d) = %d, want 5000", pair[0], pair[1], got.MinorUnits())
		}
	}
}

func TestProposeSettlementAlreadySettled(t *testing.T) {
	pairs := Aggregate([]LedgerEntry{
		expenseEntry(2, 1, 5000),
		settlementEntry(2, 1, 5000),
	})

	if _, err := ProposeSettlement(pairs, 2, 1); !errors.Is(err, ErrAlreadySettled) {
		t.Fatalf("ProposeSettlement error = %v, want ErrAlreadySettled", err)
	}
}

func assertPairs(t *testing.T, got, want []Pairwise) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d pairs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pair[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
