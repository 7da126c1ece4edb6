package friend

import (
	"context"
	"errors"

	"github.com/splitease/splitease/internal/eventlog"
	"github.com/splitease/splitease/internal/notification"
	"github.com/splitease/splitease/internal/user"
)

// Common errors
var (
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrSelfRequest       = errors.New("cannot send a friend request to yourself")
	ErrAlreadyFriends    = errors.New("users are already friends")
	ErrRequestPending    = errors.New("a friend request is already pending")
	ErrNotRecipient      = errors.New("only the recipient can respond to a friend request")
	ErrRequestNotPending = errors.New("friend request has already been resolved")
)

// Service handles friendship business logic
type Service struct {
	repo          *Repository
	users         *user.Service
	notifications *notification.Service
	events        *eventlog.Worker
}

// NewService creates a new friend service
func NewService(repo *Repository, users *user.Service, notifications *notification.Service, events *eventlog.Worker) *Service {
	return &Service{repo: repo, users: users, notifications: notifications, events: events}
}

// SendRequest sends a friend request to the user with the given email
func (s *Service) SendRequest(ctx context.Context, senderID int64, email string) (*Request, error) {
	recipient, err := s.users.SearchByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if recipient.ID == senderID {
		return nil, ErrSelfRequest
	}

	friends, err := s.repo.AreFriends(ctx, senderID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	pending, err := s.repo.GetPendingRequestBetween(ctx, senderID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, ErrRequestPending
	}

	req, err := s.repo.CreateRequest(ctx, senderID, recipient.ID)
	if err != nil {
		return nil, err
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err == nil {
		// Notification failures never fail the request itself.
		_, _ = s.notifications.NotifyFriendRequest(ctx, recipient.ID, sender.Username)
	}

	s.events.Log(eventlog.NewEvent(
		eventlog.WithType("friend.requested"),
		eventlog.WithData(req),
	))

	return req, nil
}

// Accept accepts a pending friend request and creates the friendship
func (s *Service) Accept(ctx context.Context, requestID, userID int64) (*Friendship, error) {
	req, err := s.resolveRequest(ctx, requestID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRequestStatus(ctx, requestID, RequestStatusAccepted); err != nil {
		return nil, err
	}

	return s.repo.CreateFriendship(ctx, req.SenderID, req.RecipientID)
}

// Reject rejects a pending friend request
func (s *Service) Reject(ctx context.Context, requestID, userID int64) error {
	if _, err := s.resolveRequest(ctx, requestID, userID); err != nil {
		return err
	}
	return s.repo.UpdateRequestStatus(ctx, requestID, RequestStatusRejected)
}

// ListFriends retrieves all friends of a user
func (s *Service) ListFriends(ctx context.Context, userID int64) ([]*Friend, error) {
	return s.repo.ListFriends(ctx, userID)
}

// ListPending retrieves pending friend requests addressed to a user
func (s *Service) ListPending(ctx context.Context, userID int64) ([]*Request, error) {
	return s.repo.ListPendingForUser(ctx, userID)
}

// AreFriends reports whether two users are friends
func (s *Service) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	return s.repo.AreFriends(ctx, userA, userB)
}

func (s *Service) resolveRequest(ctx context.Context, requestID, userID int64) (*Request, error) {
	req, err := s.repo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if req.Status != RequestStatusPending {
		return nil, ErrRequestNotPending
	}
	return req, nil
}
