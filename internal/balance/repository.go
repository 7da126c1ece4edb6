package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitease/splitease/internal/money"
)

// Repository materializes ledger entries from expense shares and settlements.
// Every non-payer share is a debt from the participant to the payer; every
// settlement is a repayment from payer to payee.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListEntriesForUser retrieves all ledger entries that involve a user
func (r *Repository) ListEntriesForUser(ctx context.Context, userID int64) ([]LedgerEntry, error) {
	expenseQuery := `
		SELECT es.user_id, e.payer_id, es.share_units, e.created_at
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id
		WHERE es.user_id != e.payer_id
		  AND (es.user_id = $1 OR e.payer_id = $1)
	`
	settlementQuery := `
		SELECT payer_id, payee_id, amount_units, created_at
		FROM settlements
		WHERE payer_id = $1 OR payee_id = $1
	`
	return r.collect(ctx, expenseQuery, settlementQuery, userID)
}

// ListEntriesForGroup retrieves all ledger entries scoped to a group
func (r *Repository) ListEntriesForGroup(ctx context.Context, groupID int64) ([]LedgerEntry, error) {
	expenseQuery := `
		SELECT es.user_id, e.payer_id, es.share_units, e.created_at
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id
		WHERE es.user_id != e.payer_id
		  AND e.group_id = $1
	`
	settlementQuery := `
		SELECT payer_id, payee_id, amount_units, created_at
		FROM settlements
		WHERE group_id = $1
	`
	return r.collect(ctx, expenseQuery, settlementQuery, groupID)
}

// ListEntriesBetweenUsers retrieves all ledger entries between two users
func (r *Repository) ListEntriesBetweenUsers(ctx context.Context, userA, userB int64) ([]LedgerEntry, error) {
	expenseQuery := `
		SELECT es.user_id, e.payer_id, es.share_units, e.created_at
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id
		WHERE es.user_id != e.payer_id
		  AND ((es.user_id = $1 AND e.payer_id = $2) OR (es.user_id = $2 AND e.payer_id = $1))
	`
	settlementQuery := `
		SELECT payer_id, payee_id, amount_units, created_at
		FROM settlements
		WHERE (payer_id = $1 AND payee_id = $2) OR (payer_id = $2 AND payee_id = $1)
	`
	return r.collect(ctx, expenseQuery, settlementQuery, userA, userB)
}

// ListEntriesBetweenUsersInGroup retrieves the ledger entries between two
// users restricted to one group. Group-scoped settle-up reconciles against
// this set, not the global pairwise ledger.
func (r *Repository) ListEntriesBetweenUsersInGroup(ctx context.Context, userA, userB, groupID int64) ([]LedgerEntry, error) {
	expenseQuery := `
		SELECT es.user_id, e.payer_id, es.share_units, e.created_at
		FROM expense_shares es
		JOIN expenses e ON es.expense_id = e.id
		WHERE es.user_id != e.payer_id
		  AND e.group_id = $3
		  AND ((es.user_id = $1 AND e.payer_id = $2) OR (es.user_id = $2 AND e.payer_id = $1))
	`
	settlementQuery := `
		SELECT payer_id, payee_id, amount_units, created_at
		FROM settlements
		WHERE group_id = $3
		  AND ((payer_id = $1 AND payee_id = $2) OR (payer_id = $2 AND payee_id = $1))
	`
	return r.collect(ctx, expenseQuery, settlementQuery, userA, userB, groupID)
}

func (r *Repository) collect(ctx context.Context, expenseQuery, settlementQuery string, args ...interface{}) ([]LedgerEntry, error) {
	entries, err := r.queryEntries(ctx, expenseQuery, SourceExpense, args...)
	if err != nil {
		return nil, err
	}

	settlements, err := r.queryEntries(ctx, settlementQuery, SourceSettlement, args...)
	if err != nil {
		return nil, err
	}

	return append(entries, settlements...), nil
}

func (r *Repository) queryEntries(ctx context.Context, query string, kind SourceKind, args ...interface{}) ([]LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []LedgerEntry
	for rows.Next() {
		var entry LedgerEntry
		var units int64
		if err := rows.Scan(&entry.FromUserID, &entry.ToUserID, &units, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entry.Amount = money.FromMinorUnits(units)
		entry.Kind = kind
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
