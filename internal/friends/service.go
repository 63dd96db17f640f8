// Package friends mediates the lifecycle of a relationship between two
// users through the request/accept/decline workflow, guaranteeing no
// duplicate or conflicting relationship state.
package friends

import (
	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/models"
	"chatmate/backend/internal/storage"
)

// Service handles the business logic for friendships.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new friendship service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SendRequest resolves the receiver by username and creates a pending
// friend request. All validation happens before any mutation; the final
// insert is still guarded by the store's uniqueness constraint, so a
// concurrent duplicate fails closed rather than slipping past the checks.
func (s *Service) SendRequest(senderID, receiverUsername string) (*models.FriendRequest, error) {
	receiver, err := s.Storage.GetUserByUsername(receiverUsername)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if receiver == nil {
		return nil, apperrors.ErrUserNotFound
	}
	if receiver.ID == senderID {
		return nil, apperrors.ErrSelfRequest
	}

	exists, err := s.Storage.FriendshipExists(senderID, receiver.ID)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyFriends
	}

	pending, err := s.Storage.FindPendingRequestBetween(senderID, receiver.ID)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if pending != nil {
		if pending.SenderID == senderID {
			return nil, apperrors.ErrRequestAlreadySent
		}
		return nil, apperrors.ErrRequestAlreadyReceived
	}

	req := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.RequestPending,
	}
	if err := s.Storage.CreateFriendRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ListIncomingRequests returns the pending requests addressed to userID,
// newest first.
func (s *Service) ListIncomingRequests(userID string) ([]models.IncomingRequest, error) {
	return s.Storage.ListIncomingRequests(userID)
}

// AcceptRequest accepts a pending request on behalf of its receiver. The
// acting user is matched against the stored receiver, never a client
// claim; the sender cannot accept their own request. The status update
// and friendship insert are one atomic unit in the store.
func (s *Service) AcceptRequest(requestID uint, actingUserID string) (*models.FriendRequest, error) {
	return s.Storage.AcceptFriendRequest(requestID, actingUserID)
}

// DeclineRequest declines a pending request on behalf of its receiver.
// Declining never blocks a later fresh request from either side.
func (s *Service) DeclineRequest(requestID uint, actingUserID string) (*models.FriendRequest, error) {
	return s.Storage.DeclineFriendRequest(requestID, actingUserID)
}

// ListFriends returns every user with a friendship involving userID.
func (s *Service) ListFriends(userID string) ([]models.Friend, error) {
	return s.Storage.ListFriends(userID)
}
