package friend

import "time"

// RequestStatus represents the state of a friend request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Request represents a friend request between two users
type Request struct {
	ID          int64         `json:"id"`
	SenderID    int64         `json:"sender_id"`
	RecipientID int64         `json:"recipient_id"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`

	// Populated from JOIN
	SenderUsername string `json:"sender_username,omitempty"`
	SenderEmail    string `json:"sender_email,omitempty"`
}

// Friendship links two users. UserA always holds the lower ID so each
// pair has exactly one canonical row.
type Friendship struct {
	ID        int64     `json:"id"`
	UserA     int64     `json:"user_a"`
	UserB     int64     `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// Friend is the other party of a friendship from one user's perspective
type Friend struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
