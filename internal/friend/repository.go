package friend

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles friendship data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateRequest inserts a new pending friend request
func (r *Repository) CreateRequest(ctx context.Context, senderID, recipientID int64) (*Request, error) {
	query := `
		INSERT INTO friend_requests (sender_id, recipient_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, sender_id, recipient_id, status, created_at
	`

	req := &Request{}
	err := r.db.QueryRowContext(ctx, query, senderID, recipientID, RequestStatusPending).Scan(
		&req.ID,
		&req.SenderID,
		&req.RecipientID,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	return req, nil
}

// GetRequestByID retrieves a friend request by its ID
func (r *Repository) GetRequestByID(ctx context.Context, id int64) (*Request, error) {
	query := `
		SELECT id, sender_id, recipient_id, status, created_at
		FROM friend_requests
		WHERE id = $1
	`

	req := &Request{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID,
		&req.SenderID,
		&req.RecipientID,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend request: %w", err)
	}

	return req, nil
}

// GetPendingRequestBetween looks for a pending request in either direction
func (r *Repository) GetPendingRequestBetween(ctx context.Context, userA, userB int64) (*Request, error) {
	query := `
		SELECT id, sender_id, recipient_id, status, created_at
		FROM friend_requests
		WHERE status = $3
		  AND ((sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1))
	`

	req := &Request{}
	err := r.db.QueryRowContext(ctx, query, userA, userB, RequestStatusPending).Scan(
		&req.ID,
		&req.SenderID,
		&req.RecipientID,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending request: %w", err)
	}

	return req, nil
}

// ListPendingForUser retrieves pending requests addressed to a user
func (r *Repository) ListPendingForUser(ctx context.Context, userID int64) ([]*Request, error) {
	query := `
		SELECT fr.id, fr.sender_id, fr.recipient_id, fr.status, fr.created_at, u.username, u.email
		FROM friend_requests fr
		JOIN users u ON fr.sender_id = u.id
		WHERE fr.recipient_id = $1 AND fr.status = $2
		ORDER BY fr.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req := &Request{}
		if err := rows.Scan(
			&req.ID,
			&req.SenderID,
			&req.RecipientID,
			&req.Status,
			&req.CreatedAt,
			&req.SenderUsername,
			&req.SenderEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// UpdateRequestStatus marks a request accepted or rejected
func (r *Repository) UpdateRequestStatus(ctx context.Context, id int64, status RequestStatus) error {
	query := `UPDATE friend_requests SET status = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}

// CreateFriendship inserts the canonical friendship row for a pair.
// The lower ID is always stored first.
func (r *Repository) CreateFriendship(ctx context.Context, userA, userB int64) (*Friendship, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	query := `
		INSERT INTO friendships (user_a, user_b)
		VALUES ($1, $2)
		RETURNING id, user_a, user_b, created_at
	`

	f := &Friendship{}
	err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(
		&f.ID,
		&f.UserA,
		&f.UserB,
		&f.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}

	return f, nil
}

// AreFriends reports whether a canonical friendship row exists for the pair
func (r *Repository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	query := `SELECT EXISTS(SELECT 1 FROM friendships WHERE user_a = $1 AND user_b = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friendship: %w", err)
	}
	return exists, nil
}

// ListFriends retrieves all friends of a user with their profile fields
func (r *Repository) ListFriends(ctx context.Context, userID int64) ([]*Friend, error) {
	query := `
		SELECT u.id, u.username, u.email, f.created_at
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.user_a = $1 THEN f.user_b ELSE f.user_a END
		WHERE f.user_a = $1 OR f.user_b = $1
		ORDER BY u.username
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Friend
	for rows.Next() {
		f := &Friend{}
		if err := rows.Scan(&f.UserID, &f.Username, &f.Email, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, f)
	}

	return friends, rows.Err()
}
