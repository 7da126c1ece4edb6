package expense

import (
	"context"
	"errors"

	"github.com/splitease/splitease/internal/eventlog"
	"github.com/splitease/splitease/internal/expense/split"
	"github.com/splitease/splitease/internal/group"
	"github.com/splitease/splitease/internal/money"
	"github.com/splitease/splitease/internal/notification"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotGroupMember  = errors.New("user is not a member of this group")
	ErrNotPayer        = errors.New("only the payer can delete an expense")
	ErrNegativeAmount  = errors.New("expense amount cannot be negative")
)

// Service handles expense business logic. Split computation is delegated to
// the engine; this layer only resolves rosters, persists results and fans out
// notifications.
type Service struct {
	repo          *Repository
	groups        *group.Service
	engine        *split.Engine
	notifications *notification.Service
	events        *eventlog.Worker
}

// NewService creates a new expense service with dependencies injected.
func NewService(repo *Repository, groups *group.Service, engine *split.Engine, notifications *notification.Service, events *eventlog.Worker) *Service {
	return &Service{
		repo:          repo,
		groups:        groups,
		engine:        engine,
		notifications: notifications,
		events:        events,
	}
}

// CreateExpense computes and validates the split for the request, then
// persists the expense with one share row per included participant.
func (s *Service) CreateExpense(ctx context.Context, userID int64, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	if req.Amount.Cmp(money.Zero) < 0 {
		return nil, ErrNegativeAmount
	}

	roster, err := s.roster(ctx, req.GroupID, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.CreateSplit(req.ToSplitRequest(roster), roster)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateExpense(ctx, req.GroupID, req.Description, result, ratioMap(req.Ratios))
	if err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, created, roster)
	s.events.Log(eventlog.NewEvent(
		eventlog.WithType("expense.created"),
		eventlog.WithData(created.Expense),
	))

	return created, nil
}

// UpdateExpense recomputes the whole split from the edited form state and
// replaces the prior share set atomically. There is no incremental diffing.
func (s *Service) UpdateExpense(ctx context.Context, userID, expenseID int64, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	if req.Amount.Cmp(money.Zero) < 0 {
		return nil, ErrNegativeAmount
	}

	existing, err := s.repo.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	roster, err := s.roster(ctx, existing.GroupID, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.CreateSplit(req.ToSplitRequest(roster), roster)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.ReplaceSplit(ctx, expenseID, req.Description, result, ratioMap(req.Ratios))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrExpenseNotFound
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType("expense.updated"),
		eventlog.WithData(updated.Expense),
	))

	return updated, nil
}

// GetExpenseByID retrieves an expense with its shares.
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

// ListExpensesByGroupID retrieves expenses for a group.
func (s *Service) ListExpensesByGroupID(ctx context.Context, groupID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByGroupID(ctx, groupID, perPage, offset)
}

// DeleteExpense deletes an expense. Only the payer can delete.
func (s *Service) DeleteExpense(ctx context.Context, id, userID int64) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}
	if expense.PaidByID != userID {
		return ErrNotPayer
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType("expense.deleted"),
		eventlog.WithData(expense),
	))
	return nil
}

// roster resolves a group's member list and checks the caller belongs to it.
func (s *Service) roster(ctx context.Context, groupID, userID int64) ([]split.Member, error) {
	_, members, err := s.groups.GetByIDWithMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	roster := make([]split.Member, len(members))
	isMember := false
	for i, m := range members {
		roster[i] = split.Member{ID: m.UserID, Username: m.Username}
		if m.UserID == userID {
			isMember = true
		}
	}
	if !isMember {
		return nil, ErrNotGroupMember
	}
	return roster, nil
}

func (s *Service) notifyParticipants(ctx context.Context, created *ExpenseWithShares, roster []split.Member) {
	names := make(map[int64]string, len(roster))
	for _, m := range roster {
		names[m.ID] = m.Username
	}
	payerName := names[created.Expense.PaidByID]
	for _, share := range created.Shares {
		if share.UserID == created.Expense.PaidByID {
			continue
		}
		// Notification failures never fail the expense itself.
		_, _ = s.notifications.NotifyExpenseAdded(ctx, share.UserID, payerName, share.Amount, created.Expense.ID)
	}
}

func ratioMap(entries []RatioEntry) map[int64]int {
	ratios := make(map[int64]int, len(entries))
	for _, e := range entries {
		ratios[e.UserID] = e.Ratio
	}
	return ratios
}
