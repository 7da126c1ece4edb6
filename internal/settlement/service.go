package settlement

import (
	"context"
	"errors"

	"github.com/splitease/splitease/internal/balance"
	"github.com/splitease/splitease/internal/eventlog"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/notification"
	"github.com/splitease/splitease/internal/user"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrSelfSettlement     = errors.New("cannot settle up with yourself")
	ErrNonPositiveAmount  = errors.New("settlement amount must be positive")
	ErrAmountExceedsDebt  = errors.New("settlement amount exceeds the outstanding debt")
)

// balanceResolver is the slice of the balance service a settlement needs:
// the proposed amount for the pair, globally or scoped to one group.
type balanceResolver interface {
	Propose(ctx context.Context, payerID, payeeID int64) (money.Amount, error)
	ProposeInGroup(ctx context.Context, payerID, payeeID, groupID int64) (money.Amount, error)
}

// Service handles settlement business logic. The caller is always the
// payer; recording a settlement is an immediate fact that reduces the
// pairwise balance.
type Service struct {
	repo          *Repository
	balances      balanceResolver
	users         *user.Service
	notifications *notification.Service
	events        *eventlog.Worker
}

// NewService creates a new settlement service
func NewService(repo *Repository, balances *balance.Service, users *user.Service, notifications *notification.Service, events *eventlog.Worker) *Service {
	return &Service{
		repo:          repo,
		balances:      balances,
		users:         users,
		notifications: notifications,
		events:        events,
	}
}

// Create records a settlement from the payer to the other user. When no
// amount is given the full outstanding debt is settled; an explicit amount
// may not exceed it.
func (s *Service) Create(ctx context.Context, payerID int64, req *CreateSettlementRequest) (*Settlement, error) {
	if req.OtherUserID == payerID {
		return nil, ErrSelfSettlement
	}

	payee, err := s.users.GetByID(ctx, req.OtherUserID)
	if err != nil {
		return nil, err
	}

	proposed, err := s.propose(ctx, payerID, payee.ID, req.GroupID)
	if err != nil {
		return nil, err
	}

	amount, err := resolveAmount(proposed, req.Amount)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, payerID, payee.ID, amount, req.GroupID, req.Note)
	if err != nil {
		return nil, err
	}

	payer, err := s.users.GetByID(ctx, payerID)
	if err == nil {
		// Notification failures never fail the settlement itself.
		_, _ = s.notifications.NotifySettlementRecorded(ctx, payee.ID, payer.Username, amount, created.ID)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType("settlement.recorded"),
		eventlog.WithData(created),
	))

	return created, nil
}

// propose picks the ledger scope for the pair: the group's ledger when the
// settlement targets one group, the global pairwise ledger otherwise.
func (s *Service) propose(ctx context.Context, payerID, payeeID int64, groupID *int64) (money.Amount, error) {
	if groupID != nil {
		return s.balances.ProposeInGroup(ctx, payerID, payeeID, *groupID)
	}
	return s.balances.Propose(ctx, payerID, payeeID)
}

// resolveAmount settles the full proposed debt by default; an explicit
// amount must be positive and may not exceed the proposal.
func resolveAmount(proposed money.Amount, requested *money.Amount) (money.Amount, error) {
	if requested == nil {
		return proposed, nil
	}
	amount := *requested
	if amount.Cmp(money.Zero) <= 0 {
		return money.Zero, ErrNonPositiveAmount
	}
	if amount.Cmp(proposed) > 0 {
		return money.Zero, ErrAmountExceedsDebt
	}
	return amount, nil
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListByUserID retrieves settlements involving a user
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}
