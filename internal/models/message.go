package models

import "gorm.io/gorm"

// Message kinds. Exactly one of Content / ImagePayload is populated,
// depending on the kind.
const (
	MessageText  = "text"
	MessageImage = "image"
)

// Message represents a stored chat message in the PostgreSQL database.
// The embedded gorm.Model provides the server-assigned ID and CreatedAt,
// which serve as the canonical identity and ordering of the message.
type Message struct {
	gorm.Model

	// SenderID is the ID of the user who sent the message.
	SenderID string `gorm:"type:uuid;not null;index" json:"sender_id"`
	// ReceiverID is the ID of the user the message is addressed to.
	ReceiverID string `gorm:"type:uuid;not null" json:"receiver_id"`
	// Kind discriminates text from image messages.
	Kind string `gorm:"type:text;not null" json:"kind"`
	// Content is the text body of a text message.
	Content string `gorm:"type:text" json:"content,omitempty"`
	// ImagePayload is the base64-encoded image data of an image message.
	ImagePayload string `gorm:"type:text" json:"image_payload,omitempty"`
	// PairKey is the canonical unordered (sender, receiver) pair, indexed
	// so a conversation can be fetched from either side with one lookup.
	PairKey string `gorm:"type:text;not null;index:idx_messages_pair" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PairKey == "" {
		m.PairKey = PairKey(m.SenderID, m.ReceiverID)
	}
	return
}
