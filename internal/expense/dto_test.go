package expense

import (
	"encoding/json"
	"testing"

	"github.com/splitease/splitease/internal/expense/split"
	"github.com/splitease/splitease/internal/money"
)

var testRoster = []split.Member{
	{ID: 1, Username: "alice"},
	{ID: 2, Username: "bob"},
	{ID: 3, Username: "carol"},
}

func TestToSplitRequestEqual(t *testing.T) {
	t.Run("whole roster by default", func(t *testing.T) {
		req := CreateExpenseRequest{
			Amount:        money.FromMinorUnits(10000),
			PaidByID:      1,
			SplittingType: "Equal",
		}

		sr := req.ToSplitRequest(testRoster)
		if len(sr.Participants) != 3 {
			t.Fatalf("got %d participants, want 3", len(sr.Participants))
		}
		for i, p := range sr.Participants {
			if !p.Included {
				t.Errorf("participant[%d] not included", i)
			}
		}
	})

	t.Run("participantIds narrows the set", func(t *testing.T) {
		req := CreateExpenseRequest{
			Amount:         money.FromMinorUnits(10000),
			PaidByID:       1,
			SplittingType:  "Equal",
			ParticipantIDs: []int64{2, 3},
		}

		sr := req.ToSplitRequest(testRoster)
		included := map[int64]bool{}
		for _, p := range sr.Participants {
			included[p.UserID] = p.Included
		}
		if included[1] || !included[2] || !included[3] {
			t.Errorf("included = %v, want only users 2 and 3", included)
		}
	})
}

func TestToSplitRequestRatioRosterOrder(t *testing.T) {
	// Wire order differs from roster order; the split request must follow
	// the roster so remainder cents land deterministically.
	req := CreateExpenseRequest{
		Amount:        money.FromMinorUnits(10000),
		PaidByID:      1,
		SplittingType: "Ratio",
		Ratios: []RatioEntry{
			{UserID: 3, Ratio: 1},
			{UserID: 1, Ratio: 1},
			{UserID: 2, Ratio: 1},
		},
	}

	sr := req.ToSplitRequest(testRoster)
	if len(sr.Participants) != 3 {
		t.Fatalf("got %d participants, want 3", len(sr.Participants))
	}
	for i, wantID := range []int64{1, 2, 3} {
		if sr.Participants[i].UserID != wantID {
			t.Errorf("participant[%d].UserID = %d, want %d", i, sr.Participants[i].UserID, wantID)
		}
		if sr.Participants[i].Ratio == nil || *sr.Participants[i].Ratio != 1 {
			t.Errorf("participant[%d] ratio not carried over", i)
		}
	}
}

func TestToSplitRequestOffRosterSurfaces(t *testing.T) {
	req := CreateExpenseRequest{
		Amount:        money.FromMinorUnits(10000),
		PaidByID:      1,
		SplittingType: "Custom",
		Splits: []ShareEntry{
			{UserID: 1, Share: money.FromMinorUnits(5000)},
			{UserID: 99, Share: money.FromMinorUnits(5000)},
		},
	}

	sr := req.ToSplitRequest(testRoster)

	found := false
	for _, p := range sr.Participants {
		if p.UserID == 99 && p.Included {
			found = true
		}
	}
	if !found {
		t.Error("off-roster user 99 was silently dropped instead of surfacing")
	}

	// The engine is the authority on membership; it must reject the request.
	engine := split.NewEngine(split.NewFactory())
	if _, err := engine.CreateSplit(sr, testRoster); err == nil {
		t.Error("CreateSplit accepted an off-roster participant")
	}
}

// Decode a frontend payload end to end and re-derive the shares through the
// engine: the wire contract and the engine semantics have to line up.
func TestWirePayloadRoundTrip(t *testing.T) {
	payload := `{
		"description": "Dinner",
		"amount": 100.00,
		"groupId": 7,
		"paidById": 1,
		"splittingType": "Ratio",
		"ratios": [
			{"userId": 1, "ratio": 2},
			{"userId": 2, "ratio": 1},
			{"userId": 3, "ratio": 1}
		]
	}`

	var req CreateExpenseRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if req.Amount.MinorUnits() != 10000 {
		t.Fatalf("amount = %d minor units, want 10000", req.Amount.MinorUnits())
	}

	engine := split.NewEngine(split.NewFactory())
	result, err := engine.CreateSplit(req.ToSplitRequest(testRoster), testRoster)
	if err != nil {
		t.Fatalf("CreateSplit unexpected error: %v", err)
	}

	want := map[int64]int64{1: 5000, 2: 2500, 3: 2500}
	var sum int64
	for _, s := range result.Shares {
		sum += s.Amount.MinorUnits()
		if want[s.UserID] != s.Amount.MinorUnits() {
			t.Errorf("share for user %d = %d, want %d", s.UserID, s.Amount.MinorUnits(), want[s.UserID])
		}
	}
	if sum != 10000 {
		t.Errorf("shares sum to %d, want 10000", sum)
	}
}
