package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/splitease/splitease/internal/money"
)

// Repository handles settlement data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement
func (r *Repository) Create(ctx context.Context, payerID, payeeID int64, amount money.Amount, groupID *int64, note *string) (*Settlement, error) {
	query := `
		INSERT INTO settlements (payer_id, payee_id, amount_units, group_id, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, payer_id, payee_id, amount_units, note, created_at
	`

	s := &Settlement{}
	var units int64
	err := r.db.QueryRowContext(ctx, query, payerID, payeeID, amount.MinorUnits(), groupID, note).Scan(
		&s.ID,
		&s.GroupID,
		&s.PayerID,
		&s.PayeeID,
		&units,
		&s.Note,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}
	s.Amount = money.FromMinorUnits(units)

	return s, nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.group_id, s.payer_id, s.payee_id, s.amount_units, s.note, s.created_at,
		       payer.username, payee.username
		FROM settlements s
		JOIN users payer ON s.payer_id = payer.id
		JOIN users payee ON s.payee_id = payee.id
		WHERE s.id = $1
	`

	s := &Settlement{}
	var units int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID,
		&s.GroupID,
		&s.PayerID,
		&s.PayeeID,
		&units,
		&s.Note,
		&s.CreatedAt,
		&s.PayerUsername,
		&s.PayeeUsername,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	s.Amount = money.FromMinorUnits(units)

	return s, nil
}

// ListByUserID retrieves settlements involving a user, newest first
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE payer_id = $1 OR payee_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.group_id, s.payer_id, s.payee_id, s.amount_units, s.note, s.created_at,
		       payer.username, payee.username
		FROM settlements s
		JOIN users payer ON s.payer_id = payer.id
		JOIN users payee ON s.payee_id = payee.id
		WHERE s.payer_id = $1 OR s.payee_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		s := &Settlement{}
		var units int64
		if err := rows.Scan(
			&s.ID,
			&s.GroupID,
			&s.PayerID,
			&s.PayeeID,
			&units,
			&s.Note,
			&s.CreatedAt,
			&s.PayerUsername,
			&s.PayeeUsername,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		s.Amount = money.FromMinorUnits(units)
		settlements = append(settlements, s)
	}

	return settlements, total, rows.Err()
}
