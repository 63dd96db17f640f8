package models

import "time"

// Event kinds that only exist on the wire, never in the messages table.
const (
	EventError = "error"
)

// ChatEvent is the single event type exchanged over a live connection and
// the Redis pub/sub channel. For persisted messages the ID and CreatedAt
// are the server-assigned values, so every observer sees identical
// ordering metadata.
type ChatEvent struct {
	ID           uint      `json:"id,omitempty"`
	SenderID     string    `json:"sender_id"`
	ReceiverID   string    `json:"receiver_id"`
	Kind         string    `json:"kind"`
	Content      string    `json:"content,omitempty"`
	ImagePayload string    `json:"image_payload,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// EventFromMessage builds the wire event for a persisted message.
func EventFromMessage(msg *Message) ChatEvent {
	return ChatEvent{
		ID:           msg.ID,
		SenderID:     msg.SenderID,
		ReceiverID:   msg.ReceiverID,
		Kind:         msg.Kind,
		Content:      msg.Content,
		ImagePayload: msg.ImagePayload,
		CreatedAt:    msg.CreatedAt,
	}
}
