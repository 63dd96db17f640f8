package models

import (
	"time"

	"gorm.io/gorm"
)

// Friend request lifecycle states.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// PairKey returns the canonical identifier of an unordered user pair:
// the lexicographically smaller ID first, joined with ":". Both directions
// of a conversation or relationship map to the same key.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// FriendRequest is a proposal to form a Friendship, created by the sender
// and resolved (accepted or declined) only by the receiver.
type FriendRequest struct {
	gorm.Model // ID (primary key), CreatedAt, UpdatedAt, DeletedAt

	SenderID   string `gorm:"type:uuid;not null;index" json:"sender_id"`
	ReceiverID string `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Status     string `gorm:"type:text;not null" json:"status"`
	// PairKey holds the canonical unordered pair. The partial unique index
	// guarantees at most one pending request per pair, in either direction;
	// a concurrent duplicate insert fails on the constraint instead of
	// relying on a prior read.
	PairKey string `gorm:"type:text;not null;uniqueIndex:idx_friend_requests_pending_pair,where:status = 'pending'" json:"-"`
}

// BeforeCreate fills in the derived pair key and the initial status.
func (r *FriendRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.PairKey == "" {
		r.PairKey = PairKey(r.SenderID, r.ReceiverID)
	}
	if r.Status == "" {
		r.Status = RequestPending
	}
	return
}

// Friendship is an accepted, symmetric relationship between two users.
// User1ID always holds the lexicographically smaller ID so the unique
// index on the pair covers both directions.
type Friendship struct {
	ID        uint   `gorm:"primaryKey"`
	User1ID   string `gorm:"type:uuid;not null;uniqueIndex:idx_friendships_pair"`
	User2ID   string `gorm:"type:uuid;not null;uniqueIndex:idx_friendships_pair"`
	CreatedAt time.Time
}

// EnsureCanonicalOrder swaps the pair so User1ID < User2ID.
func (f *Friendship) EnsureCanonicalOrder() {
	if f.User1ID > f.User2ID {
		f.User1ID, f.User2ID = f.User2ID, f.User1ID
	}
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) (err error) {
	f.EnsureCanonicalOrder()
	return
}

// IncomingRequest is a pending friend request annotated with the sender's
// display identity, as returned to the receiver.
type IncomingRequest struct {
	ID                uint      `json:"id"`
	SenderID          string    `json:"sender_id"`
	SenderUsername    string    `json:"sender_username"`
	SenderDisplayName string    `json:"sender_display_name"`
	CreatedAt         time.Time `json:"created_at"`
}

// Friend is one entry of a user's friend list.
type Friend struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Since       time.Time `json:"since"`
}
