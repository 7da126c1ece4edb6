package notification

import (
	"context"
	"errors"

	"github.com/splitease/splitease/internal/money"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListByRecipientID retrieves notifications for a user
func (s *Service) ListByRecipientID(ctx context.Context, recipientID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read after checking ownership
func (s *Service) MarkAsRead(ctx context.Context, id, userID int64) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for creating specific notification types

// NotifyExpenseAdded notifies a participant that they owe a share of a new expense
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID int64, payerName string, amount money.Amount, expenseID int64) (*Notification, error) {
	message := payerName + " added an expense; your share is " + amount.String()
	entityType := "EXPENSE"
	return s.repo.Create(ctx, recipientID, message, &entityType, &expenseID)
}

// NotifySettlementRecorded notifies the payee that a settlement was recorded
func (s *Service) NotifySettlementRecorded(ctx context.Context, recipientID int64, payerName string, amount money.Amount, settlementID int64) (*Notification, error) {
	message := payerName + " recorded a payment of " + amount.String() + " to you"
	entityType := "SETTLEMENT"
	return s.repo.Create(ctx, recipientID, message, &entityType, &settlementID)
}

// NotifyFriendRequest notifies a user of an incoming friend request
func (s *Service) NotifyFriendRequest(ctx context.Context, recipientID int64, senderName string) (*Notification, error) {
	message := senderName + " sent you a friend request"
	entityType := "FRIEND_REQUEST"
	return s.repo.Create(ctx, recipientID, message, &entityType, nil)
}
