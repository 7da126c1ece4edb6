package balance

import (
	"context"

	"github.com/splitease/splitease/internal/friend"
	"github.com/splitease/splitease/internal/group"
	"github.com/splitease/splitease/internal/money"
)

// FriendBalance is the net position against a single friend, signed from
// the calling user's perspective. Positive means the friend owes them.
type FriendBalance struct {
	UserID   int64
	Username string
	Net      money.Amount
}

// Service computes balances from the materialized ledger
type Service struct {
	repo    *Repository
	friends *friend.Service
	groups  *group.Service
}

// NewService creates a new balance service
func NewService(repo *Repository, friends *friend.Service, groups *group.Service) *Service {
	return &Service{repo: repo, friends: friends, groups: groups}
}

// FriendBalances returns the net position against each friend
func (s *Service) FriendBalances(ctx context.Context, userID int64) ([]FriendBalance, error) {
	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListEntriesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	pairs := Aggregate(entries)

	balances := make([]FriendBalance, len(friends))
	for i, f := range friends {
		balances[i] = FriendBalance{
			UserID:   f.UserID,
			Username: f.Username,
			Net:      Between(pairs, userID, f.UserID),
		}
	}

	return balances, nil
}

// WithUser returns the net position against one other user, signed from
// the calling user's perspective
func (s *Service) WithUser(ctx context.Context, userID, otherID int64) (money.Amount, error) {
	entries, err := s.repo.ListEntriesBetweenUsers(ctx, userID, otherID)
	if err != nil {
		return money.Zero, err
	}
	return Between(Aggregate(entries), userID, otherID), nil
}

// GroupBalances returns per-member nets, pairwise nets and the outstanding
// total for a group. The caller must be a member.
func (s *Service) GroupBalances(ctx context.Context, groupID, userID int64) (*GroupSummary, []Pairwise, error) {
	_, members, err := s.groups.GetByIDWithMembers(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	isMember := false
	memberIDs := make([]int64, len(members))
	for i, m := range members {
		memberIDs[i] = m.UserID
		if m.UserID == userID {
			isMember = true
		}
	}
	if !isMember {
		return nil, nil, group.ErrNotAuthorized
	}

	entries, err := s.repo.ListEntriesForGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	pairs := Aggregate(entries)
	summary := Summarize(pairs, memberIDs)

	return &summary, pairs, nil
}

// Propose suggests a settlement amount that clears the debt between two users
func (s *Service) Propose(ctx context.Context, payerID, payeeID int64) (money.Amount, error) {
	entries, err := s.repo.ListEntriesBetweenUsers(ctx, payerID, payeeID)
	if err != nil {
		return money.Zero, err
	}
	return ProposeSettlement(Aggregate(entries), payerID, payeeID)
}

// ProposeInGroup suggests a settlement amount that clears the debt between
// two users within one group. Debts the pair carries in other groups (or
// outside any group) do not count.
func (s *Service) ProposeInGroup(ctx context.Context, payerID, payeeID, groupID int64) (money.Amount, error) {
	entries, err := s.repo.ListEntriesBetweenUsersInGroup(ctx, payerID, payeeID, groupID)
	if err != nil {
		return money.Zero, err
	}
	return ProposeSettlement(Aggregate(entries), payerID, payeeID)
}
