package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitease/splitease/internal/expense/split"
	"github.com/splitease/splitease/internal/money"
)

// Repository handles expense and share data persistence. Money columns hold
// integer minor units (BIGINT), never floats.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense and its share rows in one transaction.
func (r *Repository) CreateExpense(ctx context.Context, groupID int64, description string, result *split.Result, ratios map[int64]int) (*ExpenseWithShares, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (group_id, payer_id, description, amount_units, split_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, description, amount_units, split_method, created_at, updated_at
	`

	expense := &Expense{}
	var amountUnits int64
	err = tx.QueryRowContext(ctx, query,
		groupID,
		result.PaidByID,
		description,
		result.Total.MinorUnits(),
		result.Method,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PaidByID,
		&expense.Description,
		&amountUnits,
		&expense.SplitMethod,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	expense.Amount = money.FromMinorUnits(amountUnits)

	shares, err := insertShares(ctx, tx, expense.ID, result, ratios)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}
	return &ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

// ReplaceSplit atomically swaps an expense's amount, method and share set for
// a freshly recomputed split.
func (r *Repository) ReplaceSplit(ctx context.Context, expenseID int64, description string, result *split.Result, ratios map[int64]int) (*ExpenseWithShares, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE expenses
		SET payer_id = $2, description = $3, amount_units = $4, split_method = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, group_id, payer_id, description, amount_units, split_method, created_at, updated_at
	`

	expense := &Expense{}
	var amountUnits int64
	err = tx.QueryRowContext(ctx, query,
		expenseID,
		result.PaidByID,
		description,
		result.Total.MinorUnits(),
		result.Method,
	).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PaidByID,
		&expense.Description,
		&amountUnits,
		&expense.SplitMethod,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	expense.Amount = money.FromMinorUnits(amountUnits)

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, expenseID); err != nil {
		return nil, fmt.Errorf("failed to clear shares: %w", err)
	}

	shares, err := insertShares(ctx, tx, expenseID, result, ratios)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}
	return &ExpenseWithShares{Expense: expense, Shares: shares}, nil
}

func insertShares(ctx context.Context, tx *sql.Tx, expenseID int64, result *split.Result, ratios map[int64]int) ([]*Share, error) {
	query := `
		INSERT INTO expense_shares (expense_id, user_id, share_units, ratio)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, user_id, share_units, ratio
	`

	shares := make([]*Share, len(result.Shares))
	for i, s := range result.Shares {
		var ratio *int
		if r, ok := ratios[s.UserID]; ok {
			ratio = &r
		}

		share := &Share{}
		var shareUnits int64
		err := tx.QueryRowContext(ctx, query, expenseID, s.UserID, s.Amount.MinorUnits(), ratio).Scan(
			&share.ID,
			&share.ExpenseID,
			&share.UserID,
			&shareUnits,
			&share.Ratio,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create share: %w", err)
		}
		share.Amount = money.FromMinorUnits(shareUnits)
		shares[i] = share
	}
	return shares, nil
}

// GetExpenseByID retrieves an expense by its ID.
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount_units, e.split_method, e.created_at, e.updated_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	var amountUnits int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PaidByID,
		&expense.Description,
		&amountUnits,
		&expense.SplitMethod,
		&expense.CreatedAt,
		&expense.UpdatedAt,
		&expense.PayerUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.FromMinorUnits(amountUnits)

	return expense, nil
}

// GetSharesByExpenseID retrieves all share rows for an expense.
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID int64) ([]*Share, error) {
	query := `
		SELECT s.id, s.expense_id, s.user_id, s.share_units, s.ratio, u.username
		FROM expense_shares s
		JOIN users u ON s.user_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*Share
	for rows.Next() {
		share := &Share{}
		var shareUnits int64
		if err := rows.Scan(
			&share.ID,
			&share.ExpenseID,
			&share.UserID,
			&shareUnits,
			&share.Ratio,
			&share.Username,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Amount = money.FromMinorUnits(shareUnits)
		shares = append(shares, share)
	}

	return shares, rows.Err()
}

// ListExpensesByGroupID retrieves expenses for a group, newest first.
func (r *Repository) ListExpensesByGroupID(ctx context.Context, groupID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE group_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount_units, e.split_method, e.created_at, e.updated_at, u.username
		FROM expenses e
		JOIN users u ON e.payer_id = u.id
		WHERE e.group_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, groupID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		var amountUnits int64
		if err := rows.Scan(
			&expense.ID,
			&expense.GroupID,
			&expense.PaidByID,
			&expense.Description,
			&amountUnits,
			&expense.SplitMethod,
			&expense.CreatedAt,
			&expense.UpdatedAt,
			&expense.PayerUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.FromMinorUnits(amountUnits)
		expenses = append(expenses, expense)
	}

	return expenses, total, rows.Err()
}

// DeleteExpense deletes an expense and its shares.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return tx.Commit()
}
