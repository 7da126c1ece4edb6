package notification

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID                int64   `json:"id"`
	Message           string  `json:"message"`
	IsRead            bool    `json:"isRead"`
	RelatedEntityType *string `json:"relatedEntityType,omitempty"`
	RelatedEntityID   *int64  `json:"relatedEntityId,omitempty"`
	CreatedAt         string  `json:"createdAt"`
}

// UnreadCountResponse carries the unread notification count
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToResponse converts a Notification model to a NotificationResponse DTO
func (n *Notification) ToResponse() *NotificationResponse {
	return &NotificationResponse{
		ID:                n.ID,
		Message:           n.Message,
		IsRead:            n.IsRead,
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityID:   n.RelatedEntityID,
		CreatedAt:         n.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
