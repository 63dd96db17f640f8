package storage

import (
	"context"
	"errors"
	"log"

	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	UpdateLastLogin(userID string) error
	ListUsers() ([]models.User, error)

	CreateFriendRequest(req *models.FriendRequest) error
	FindPendingRequestBetween(userA, userB string) (*models.FriendRequest, error)
	ListIncomingRequests(receiverID string) ([]models.IncomingRequest, error)
	AcceptFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error)
	DeclineFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error)
	FriendshipExists(userA, userB string) (bool, error)
	ListFriends(userID string) ([]models.Friend, error)

	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB string) ([]models.Message, error)
	CountMessages() (int64, error)

	PublishEvent(event models.ChatEvent) error
	SubscribeEvents() <-chan models.ChatEvent
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser inserts a new account. A username collision is mapped to the
// domain error instead of the driver's unique-violation.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrUsernameTaken
		}
		log.Printf("ERROR: Failed to create user %s: %v", user.Username, err)
		return err
	}
	return nil
}

// GetUserByID returns nil without an error when no such user exists.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns nil without an error when no such user exists.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateLastLogin(userID string) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login", gorm.Expr("NOW()")).Error
}

func (s *Service) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("username asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateFriendRequest inserts a pending request. The partial unique index
// on the pair key is the authority: when two requests for the same pair
// race, the second insert fails closed and is mapped to the domain error.
func (s *Service) CreateFriendRequest(req *models.FriendRequest) error {
	if err := s.DB.Create(req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrRequestPairPending
		}
		log.Printf("ERROR: Failed to create friend request %s -> %s: %v", req.SenderID, req.ReceiverID, err)
		return err
	}
	return nil
}

// FindPendingRequestBetween looks up a pending request for the unordered
// pair, in either direction. Returns nil when there is none.
func (s *Service) FindPendingRequestBetween(userA, userB string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.DB.Where("pair_key = ? AND status = ?", models.PairKey(userA, userB), models.RequestPending).
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListIncomingRequests returns the receiver's pending requests, newest
// first, each annotated with the sender's display identity.
func (s *Service) ListIncomingRequests(receiverID string) ([]models.IncomingRequest, error) {
	rawSQL := `
        SELECT
            fr.id,
            fr.sender_id,
            fr.created_at,
            u.username     AS sender_username,
            u.display_name AS sender_display_name
        FROM friend_requests fr
        JOIN users u ON u.id = fr.sender_id
        WHERE fr.receiver_id = ?
          AND fr.status = ?
          AND fr.deleted_at IS NULL
        ORDER BY fr.created_at DESC
    `

	var requests []models.IncomingRequest
	if err := s.DB.Raw(rawSQL, receiverID, models.RequestPending).Scan(&requests).Error; err != nil {
		log.Printf("ERROR: Failed to list incoming requests for %s: %v", receiverID, err)
		return nil, err
	}
	return requests, nil
}

// AcceptFriendRequest transitions a pending request to accepted and creates
// the friendship as one atomic unit. The request row is locked for the
// duration of the transaction, so of two concurrent accepts exactly one
// observes the pending row; the other gets ErrRequestNotFound. Both steps
// commit or neither does.
func (s *Service) AcceptFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, receiverID, models.RequestPending).
			First(&req).Error
		if err != nil {
			return err
		}

		if err := tx.Model(&req).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}

		// ON CONFLICT DO NOTHING keeps the insert from aborting the
		// transaction when the pair is already friends, which happens
		// when a request was still pending at friendship creation time.
		friendship := &models.Friendship{User1ID: req.SenderID, User2ID: req.ReceiverID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(friendship).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to accept friend request %d: %v", requestID, err)
		return nil, err
	}
	return &req, nil
}

// DeclineFriendRequest transitions a pending request to declined. Only the
// receiver may decline, and no friendship is created. A later fresh request
// between the pair stays possible: the duplicate check only considers
// pending state.
func (s *Service) DeclineFriendRequest(requestID uint, receiverID string) (*models.FriendRequest, error) {
	var req models.FriendRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND receiver_id = ? AND status = ?", requestID, receiverID, models.RequestPending).
			First(&req).Error
		if err != nil {
			return err
		}
		return tx.Model(&req).Update("status", models.RequestDeclined).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrRequestNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to decline friend request %d: %v", requestID, err)
		return nil, err
	}
	return &req, nil
}

// FriendshipExists reports whether the unordered pair already has a
// friendship record.
func (s *Service) FriendshipExists(userA, userB string) (bool, error) {
	f := models.Friendship{User1ID: userA, User2ID: userB}
	f.EnsureCanonicalOrder()

	var count int64
	err := s.DB.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", f.User1ID, f.User2ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFriends returns every user sharing a friendship with userID, with
// their display identity. The join resolves the "other side" of each
// canonical pair.
func (s *Service) ListFriends(userID string) ([]models.Friend, error) {
	rawSQL := `
        SELECT
            u.id,
            u.username,
            u.display_name,
            f.created_at AS since
        FROM friendships f
        JOIN users u
          ON u.id = CASE WHEN f.user1_id = ? THEN f.user2_id ELSE f.user1_id END
        WHERE f.user1_id = ? OR f.user2_id = ?
        ORDER BY u.username ASC
    `

	var friends []models.Friend
	if err := s.DB.Raw(rawSQL, userID, userID, userID).Scan(&friends).Error; err != nil {
		log.Printf("ERROR: Failed to list friends for %s: %v", userID, err)
		return nil, err
	}
	return friends, nil
}
