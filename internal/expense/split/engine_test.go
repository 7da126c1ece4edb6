package split

import (
	"errors"
	"testing"

	"github.com/splitease/splitease/internal/money"
)

var testRoster = []Member{
	{ID: 1, Username: "alice"},
	{ID: 2, Username: "bob"},
	{ID: 3, Username: "carol"},
}

func amount(units int64) money.Amount {
	return money.FromMinorUnits(units)
}

func amountPtr(units int64) *money.Amount {
	a := money.FromMinorUnits(units)
	return &a
}

func intPtr(n int) *int {
	return &n
}

func shareUnits(shares []Share) map[int64]int64 {
	out := make(map[int64]int64, len(shares))
	for _, s := range shares {
		out[s.UserID] = s.Amount.MinorUnits()
	}
	return out
}

func TestCreateSplitEqual(t *testing.T) {
	engine := NewEngine(NewFactory())

	tests := []struct {
		name       string
		totalUnits int64
		userIDs    []int64
		want       map[int64]int64
	}{
		{
			name:       "even three way",
			totalUnits: 9000,
			userIDs:    []int64{1, 2, 3},
			want:       map[int64]int64{1: 3000, 2: 3000, 3: 3000},
		},
		{
			name:       "remainder goes to earliest",
			totalUnits: 10000,
			userIDs:    []int64{1, 2, 3},
			want:       map[int64]int64{1: 3334, 2: 3333, 3: 3333},
		},
		{
			name:       "subset of the roster",
			totalUnits: 5000,
			userIDs:    []int64{2, 3},
			want:       map[int64]int64{2: 2500, 3: 2500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{
				Total:    amount(tt.totalUnits),
				PaidByID: 1,
				Method:   MethodEqual,
			}
			for _, id := range tt.userIDs {
				req.Participants = append(req.Participants, Participant{UserID: id, Included: true})
			}

			result, err := engine.CreateSplit(req, testRoster)
			if err != nil {
				t.Fatalf("CreateSplit unexpected error: %v", err)
			}
			assertShares(t, result, tt.want, tt.totalUnits)
		})
	}
}

func TestCreateSplitRatio(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(6000),
		PaidByID: 1,
		Method:   MethodRatio,
		Participants: []Participant{
			{UserID: 1, Included: true, Ratio: intPtr(1)},
			{UserID: 2, Included: true, Ratio: intPtr(2)},
			{UserID: 3, Included: true, Ratio: intPtr(3)},
		},
	}

	result, err := engine.CreateSplit(req, testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}
	assertShares(t, result, map[int64]int64{1: 1000, 2: 2000, 3: 3000}, 6000)
}

func TestCreateSplitRatioDefaultsToOne(t *testing.T) {
	engine := NewEngine(NewFactory())

	// Missing ratios count as 1, so this behaves like a weighted split 2:1:1.
	req := Request{
		Total:    amount(4000),
		PaidByID: 1,
		Method:   MethodRatio,
		Participants: []Participant{
			{UserID: 1, Included: true, Ratio: intPtr(2)},
			{UserID: 2, Included: true},
			{UserID: 3, Included: true},
		},
	}

	result, err := engine.CreateSplit(req, testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}
	assertShares(t, result, map[int64]int64{1: 2000, 2: 1000, 3: 1000}, 4000)
}

func TestCreateSplitRatioInvalid(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(4000),
		PaidByID: 1,
		Method:   MethodRatio,
		Participants: []Participant{
			{UserID: 1, Included: true, Ratio: intPtr(0)},
			{UserID: 2, Included: true, Ratio: intPtr(1)},
		},
	}

	if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrInvalidRatio) {
		t.Fatalf("CreateSplit error = %v, want ErrInvalidRatio", err)
	}
}

func TestCreateSplitCustom(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(10000),
		PaidByID: 1,
		Method:   MethodCustom,
		Participants: []Participant{
			{UserID: 1, Included: true, Share: amountPtr(7000)},
			{UserID: 2, Included: true, Share: amountPtr(3000)},
		},
	}

	result, err := engine.CreateSplit(req, testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}
	assertShares(t, result, map[int64]int64{1: 7000, 2: 3000}, 10000)
}

func TestCreateSplitCustomMismatch(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(10000),
		PaidByID: 1,
		Method:   MethodCustom,
		Participants: []Participant{
			{UserID: 1, Included: true, Share: amountPtr(7000)},
			{UserID: 2, Included: true, Share: amountPtr(2999)},
		},
	}

	if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrReconciliationMismatch) {
		t.Fatalf("CreateSplit error = %v, want ErrReconciliationMismatch", err)
	}
}

// A negative share reconciles arithmetically ({-10.00, 110.00} sums to
// 100.00) but is never a valid split.
func TestCreateSplitCustomNegativeShare(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(10000),
		PaidByID: 1,
		Method:   MethodCustom,
		Participants: []Participant{
			{UserID: 1, Included: true, Share: amountPtr(-1000)},
			{UserID: 2, Included: true, Share: amountPtr(11000)},
		},
	}

	if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, money.ErrInvalidAmount) {
		t.Fatalf("CreateSplit error = %v, want money.ErrInvalidAmount", err)
	}
}

func TestCreateSplitCustomMissingShare(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(10000),
		PaidByID: 1,
		Method:   MethodCustom,
		Participants: []Participant{
			{UserID: 1, Included: true, Share: amountPtr(10000)},
			{UserID: 2, Included: true},
		},
	}

	if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrMissingShare) {
		t.Fatalf("CreateSplit error = %v, want ErrMissingShare", err)
	}
}

func TestCreateSplitUnknownMember(t *testing.T) {
	engine := NewEngine(NewFactory())

	t.Run("unknown participant", func(t *testing.T) {
		req := Request{
			Total:    amount(1000),
			PaidByID: 1,
			Method:   MethodEqual,
			Participants: []Participant{
				{UserID: 1, Included: true},
				{UserID: 99, Included: true},
			},
		}
		if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrUnknownMember) {
			t.Fatalf("CreateSplit error = %v, want ErrUnknownMember", err)
		}
	})

	t.Run("unknown payer", func(t *testing.T) {
		req := Request{
			Total:    amount(1000),
			PaidByID: 99,
			Method:   MethodEqual,
			Participants: []Participant{
				{UserID: 1, Included: true},
			},
		}
		if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrUnknownMember) {
			t.Fatalf("CreateSplit error = %v, want ErrUnknownMember", err)
		}
	})
}

func TestCreateSplitNoParticipants(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(1000),
		PaidByID: 1,
		Method:   MethodEqual,
		Participants: []Participant{
			{UserID: 2, Included: false},
		},
	}

	if _, err := engine.CreateSplit(req, testRoster); !errors.Is(err, ErrNoParticipants) {
		t.Fatalf("CreateSplit error = %v, want ErrNoParticipants", err)
	}
}

// A payer who is not among the included participants is fine: paying for
// something does not make you a beneficiary of it.
func TestCreateSplitPayerNotIncluded(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(5000),
		PaidByID: 1,
		Method:   MethodEqual,
		Participants: []Participant{
			{UserID: 2, Included: true},
			{UserID: 3, Included: true},
		},
	}

	result, err := engine.CreateSplit(req, testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}
	assertShares(t, result, map[int64]int64{2: 2500, 3: 2500}, 5000)
}

func TestCreateSplitDeterministic(t *testing.T) {
	engine := NewEngine(NewFactory())

	req := Request{
		Total:    amount(10001),
		PaidByID: 1,
		Method:   MethodEqual,
		Participants: []Participant{
			{UserID: 1, Included: true},
			{UserID: 2, Included: true},
			{UserID: 3, Included: true},
		},
	}

	first, err := engine.CreateSplit(req, testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := engine.CreateSplit(req, testRoster)
		if err != nil {
			t.Fatalf("CreateSplit unexpected error on run %d: %v", i, err)
		}
		if len(again.Shares) != len(first.Shares) {
			t.Fatalf("run %d produced %d shares, want %d", i, len(again.Shares), len(first.Shares))
		}
		for j := range first.Shares {
			if again.Shares[j] != first.Shares[j] {
				t.Fatalf("run %d share[%d] = %+v, want %+v", i, j, again.Shares[j], first.Shares[j])
			}
		}
	}
}

func TestFactoryUnknownMethod(t *testing.T) {
	factory := NewFactory()

	if _, err := factory.CreateFromString("Percentage"); err == nil {
		t.Fatal("CreateFromString expected error for unknown method")
	}
}

func assertShares(t *testing.T, result *Result, want map[int64]int64, totalUnits int64) {
	t.Helper()
	if len(result.Shares) != len(want) {
		t.Fatalf("got %d shares, want %d", len(result.Shares), len(want))
	}

	var sum int64
	for userID, units := range shareUnits(result.Shares) {
		sum += units
		if want[userID] != units {
			t.Errorf("share for user %d = %d, want %d", userID, units, want[userID])
		}
	}
	if sum != totalUnits {
		t.Errorf("shares sum to %d, want %d", sum, totalUnits)
	}
}
