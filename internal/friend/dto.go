package friend

// SendRequestRequest represents the request to send a friend request
type SendRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestResponse represents a friend request in API responses
type RequestResponse struct {
	ID             int64         `json:"id"`
	SenderID       int64         `json:"senderId"`
	SenderUsername string        `json:"senderUsername,omitempty"`
	SenderEmail    string        `json:"senderEmail,omitempty"`
	RecipientID    int64         `json:"recipientId"`
	Status         RequestStatus `json:"status"`
	CreatedAt      string        `json:"createdAt"`
}

// FriendResponse represents a friend in API responses
type FriendResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Since    string `json:"since"`
}

// ToResponse converts a Request model to a RequestResponse DTO
func (r *Request) ToResponse() *RequestResponse {
	return &RequestResponse{
		ID:             r.ID,
		SenderID:       r.SenderID,
		SenderUsername: r.SenderUsername,
		SenderEmail:    r.SenderEmail,
		RecipientID:    r.RecipientID,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Friend model to a FriendResponse DTO
func (f *Friend) ToResponse() *FriendResponse {
	return &FriendResponse{
		UserID:   f.UserID,
		Username: f.Username,
		Email:    f.Email,
		Since:    f.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
