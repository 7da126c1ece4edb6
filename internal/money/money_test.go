package money

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "integer", input: "100", want: 10000},
		{name: "two fraction digits", input: "12.50", want: 1250},
		{name: "one fraction digit", input: "33.4", want: 3340},
		{name: "zero", input: "0", want: 0},
		{name: "cent", input: "0.07", want: 7},
		{name: "whitespace trimmed", input: " 5.25 ", want: 525},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "-1", wantErr: true},
		{name: "explicit plus", input: "+5", wantErr: true},
		{name: "three fraction digits", input: "1.234", wantErr: true},
		{name: "trailing dot", input: "1.", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got.MinorUnits() != tt.want {
				t.Errorf("Parse(%q) = %d minor units, want %d", tt.input, got.MinorUnits(), tt.want)
			}
		})
	}
}

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name   string
		units  int64
		n      int
		want   []int64
		errExp error
	}{
		{name: "even division", units: 9000, n: 3, want: []int64{3000, 3000, 3000}},
		{name: "remainder to earliest", units: 10000, n: 3, want: []int64{3334, 3333, 3333}},
		{name: "single participant", units: 1250, n: 1, want: []int64{1250}},
		{name: "one cent over two", units: 1, n: 2, want: []int64{1, 0}},
		{name: "zero amount", units: 0, n: 4, want: []int64{0, 0, 0, 0}},
		{name: "zero count", units: 100, n: 0, errExp: ErrInvalidSplitCount},
		{name: "negative count", units: 100, n: -1, errExp: ErrInvalidSplitCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := FromMinorUnits(tt.units).EqualSplit(tt.n)
			if tt.errExp != nil {
				if !errors.Is(err, tt.errExp) {
					t.Fatalf("EqualSplit error = %v, want %v", err, tt.errExp)
				}
				return
			}
			if err != nil {
				t.Fatalf("EqualSplit unexpected error: %v", err)
			}
			assertParts(t, parts, tt.want, tt.units)
		})
	}
}

func TestProportionalSplit(t *testing.T) {
	tests := []struct {
		name    string
		units   int64
		weights []int
		want    []int64
		errExp  error
	}{
		{name: "exact ratios", units: 6000, weights: []int{1, 2, 3}, want: []int64{1000, 2000, 3000}},
		{name: "equal weights match equal split", units: 10000, weights: []int{1, 1, 1}, want: []int64{3334, 3333, 3333}},
		{name: "remainder to earliest", units: 100, weights: []int{1, 1, 1}, want: []int64{34, 33, 33}},
		{name: "single weight", units: 777, weights: []int{5}, want: []int64{777}},
		{name: "no weights", units: 100, weights: nil, errExp: ErrInvalidWeights},
		{name: "zero weight", units: 100, weights: []int{1, 0}, errExp: ErrInvalidWeights},
		{name: "negative weight", units: 100, weights: []int{2, -1}, errExp: ErrInvalidWeights},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, err := FromMinorUnits(tt.units).ProportionalSplit(tt.weights)
			if tt.errExp != nil {
				if !errors.Is(err, tt.errExp) {
					t.Fatalf("ProportionalSplit error = %v, want %v", err, tt.errExp)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProportionalSplit unexpected error: %v", err)
			}
			assertParts(t, parts, tt.want, tt.units)
		})
	}
}

// Raising one participant's weight while the others stay fixed must never
// shrink that participant's share.
func TestProportionalSplitMonotonicity(t *testing.T) {
	totals := []int64{100, 999, 10001, 123457}
	others := []int{1, 3, 7}

	for _, units := range totals {
		prev := int64(-1)
		for w := 1; w <= 50; w++ {
			weights := append([]int{w}, others...)
			parts, err := FromMinorUnits(units).ProportionalSplit(weights)
			if err != nil {
				t.Fatalf("ProportionalSplit(%d, %v) unexpected error: %v", units, weights, err)
			}
			if got := Sum(parts).MinorUnits(); got != units {
				t.Fatalf("ProportionalSplit(%d, %v) parts sum to %d", units, weights, got)
			}
			if share := parts[0].MinorUnits(); share < prev {
				t.Fatalf("share for weight %d dropped to %d from %d (total %d)", w, share, prev, units)
			} else {
				prev = share
			}
		}
	}
}

func TestProportionalSplitOverflow(t *testing.T) {
	huge := FromMinorUnits(math.MaxInt64 / 2)
	if _, err := huge.ProportionalSplit([]int{3, 3}); !errors.Is(err, ErrSplitOverflow) {
		t.Fatalf("ProportionalSplit error = %v, want ErrSplitOverflow", err)
	}

	// The guard is about the weight product, not the amount alone: the same
	// amount splits fine when every weight is 1.
	parts, err := huge.ProportionalSplit([]int{1, 1})
	if err != nil {
		t.Fatalf("ProportionalSplit unexpected error: %v", err)
	}
	if Sum(parts).MinorUnits() != huge.MinorUnits() {
		t.Errorf("parts sum to %d, want %d", Sum(parts).MinorUnits(), huge.MinorUnits())
	}
}

// assertParts checks both exact part values and the reconciliation property:
// the parts always sum back to the original amount.
func assertParts(t *testing.T, parts []Amount, want []int64, total int64) {
	t.Helper()
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}
	for i, p := range parts {
		if p.MinorUnits() != want[i] {
			t.Errorf("part[%d] = %d, want %d", i, p.MinorUnits(), want[i])
		}
	}
	if Sum(parts).MinorUnits() != total {
		t.Errorf("parts sum to %d, want %d", Sum(parts).MinorUnits(), total)
	}
}

func TestArithmetic(t *testing.T) {
	a := FromMinorUnits(1250)
	b := FromMinorUnits(750)

	if got := a.Add(b); got.MinorUnits() != 2000 {
		t.Errorf("Add = %d, want 2000", got.MinorUnits())
	}
	if got := a.Sub(b); got.MinorUnits() != 500 {
		t.Errorf("Sub = %d, want 500", got.MinorUnits())
	}
	if got := b.Sub(a); got.MinorUnits() != -500 {
		t.Errorf("Sub = %d, want -500", got.MinorUnits())
	}
	if got := b.Sub(a).Abs(); got.MinorUnits() != 500 {
		t.Errorf("Abs = %d, want 500", got.MinorUnits())
	}
	if got := a.Neg(); got.MinorUnits() != -1250 {
		t.Errorf("Neg = %d, want -1250", got.MinorUnits())
	}
	if !Zero.IsZero() {
		t.Error("Zero.IsZero() = false")
	}
	if a.Cmp(b) != 1 || b.Cmp(a) != -1 || a.Cmp(a) != 0 {
		t.Error("Cmp ordering is wrong")
	}
}

func TestUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "number", input: `12.5`, want: 1250},
		{name: "quoted string", input: `"42.07"`, want: 4207},
		{name: "garbage", input: `"x"`, wantErr: true},
		{name: "negative number", input: `-10.00`, wantErr: true},
		{name: "negative string", input: `"-10.00"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			err := a.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("UnmarshalJSON(%s) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalJSON(%s) unexpected error: %v", tt.input, err)
			}
			if a.MinorUnits() != tt.want {
				t.Errorf("UnmarshalJSON(%s) = %d, want %d", tt.input, a.MinorUnits(), tt.want)
			}
		})
	}
}
