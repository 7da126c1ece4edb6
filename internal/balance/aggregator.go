package balance

import (
	"sort"

	"github.com/splitease/splitease/internal/money"
)

type pairKey struct {
	a, b int64
}

// Aggregate folds ledger entries into one net balance per unordered pair of
// members. The fold is associative and commutative, so the result is
// invariant under any permutation of the input; the returned slice is sorted
// by (MemberA, MemberB) for determinism. There is no cached state anywhere:
// balances are always recomputed from the full entry set.
func Aggregate(entries []LedgerEntry) []Pairwise {
	nets := make(map[pairKey]money.Amount)

	for _, e := range entries {
		// delta is what From additionally owes To.
		delta := e.Amount
		if e.Kind == SourceSettlement {
			delta = delta.Neg()
		}

		// Net is held from MemberA's perspective (lower id); From owing To
		// lowers From's net and raises To's.
		if e.FromUserID < e.ToUserID {
			key := pairKey{a: e.FromUserID, b: e.ToUserID}
			nets[key] = nets[key].Sub(delta)
		} else {
			key := pairKey{a: e.ToUserID, b: e.FromUserID}
			nets[key] = nets[key].Add(delta)
		}
	}

	pairs := make([]Pairwise, 0, len(nets))
	for key, net := range nets {
		pairs = append(pairs, Pairwise{MemberA: key.a, MemberB: key.b, Net: net})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].MemberA != pairs[j].MemberA {
			return pairs[i].MemberA < pairs[j].MemberA
		}
		return pairs[i].MemberB < pairs[j].MemberB
	})
	return pairs
}

// Between returns the net balance from a's perspective: positive means a is
// owed by b, negative means a owes b, zero means settled up.
func Between(pairs []Pairwise, a, b int64) money.Amount {
	for _, p := range pairs {
		if p.MemberA == a && p.MemberB == b {
			return p.Net
		}
		if p.MemberA == b && p.MemberB == a {
			return p.Net.Neg()
		}
	}
	return money.Zero
}

// Summarize restricts the pairwise balances to one group's membership and
// sums each member's net position.
func Summarize(pairs []Pairwise, memberIDs []int64) GroupSummary {
	members := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	nets := make(map[int64]money.Amount, len(memberIDs))
	for _, p := range pairs {
		if !members[p.MemberA] || !members[p.MemberB] {
			continue
		}
		nets[p.MemberA] = nets[p.MemberA].Add(p.Net)
		nets[p.MemberB] = nets[p.MemberB].Sub(p.Net)
	}

	summary := GroupSummary{PerMember: make([]MemberNet, 0, len(memberIDs))}
	sorted := append([]int64(nil), memberIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, id := range sorted {
		net := nets[id]
		summary.PerMember = append(summary.PerMember, MemberNet{UserID: id, Net: net})
		if net.Cmp(money.Zero) > 0 {
			summary.Outstanding = summary.Outstanding.Add(net)
		}
	}
	return summary
}
