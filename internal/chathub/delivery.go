package chathub

import (
	"log"
	"unicode/utf8"

	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/config"
	"chatmate/backend/internal/models"
	"chatmate/backend/internal/storage"
)

// DeliveryService accepts a single chat send, persists it durably, then
// publishes it for best-effort live delivery. Persistence success is the
// success criterion: an offline recipient or a broken publish never fails
// the send, because the history fetch is the delivery guarantee.
type DeliveryService struct {
	Storage storage.Storage
}

// NewDeliveryService creates a new message delivery service.
func NewDeliveryService(s storage.Storage) *DeliveryService {
	return &DeliveryService{Storage: s}
}

// Send validates, persists and publishes one message. All validation runs
// before any mutation. The returned message carries the server-assigned ID
// and timestamp, which is also exactly what live observers receive.
func (d *DeliveryService) Send(senderID, receiverID, kind, content, imagePayload string) (*models.Message, error) {
	if senderID == "" || receiverID == "" {
		return nil, apperrors.ErrMissingParticipant
	}

	switch kind {
	case models.MessageText:
		if imagePayload != "" {
			return nil, apperrors.ErrConflictingPayload
		}
		if content == "" {
			return nil, apperrors.ErrEmptyContent
		}
		if utf8.RuneCountInString(content) > config.MaxMessageLength {
			return nil, apperrors.ErrContentTooLong
		}
	case models.MessageImage:
		if content != "" {
			return nil, apperrors.ErrConflictingPayload
		}
		if imagePayload == "" {
			return nil, apperrors.ErrMissingImage
		}
	default:
		return nil, apperrors.ErrUnknownKind
	}

	receiver, err := d.Storage.GetUserByID(receiverID)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	if receiver == nil {
		return nil, apperrors.ErrUserNotFound
	}

	msg := &models.Message{
		SenderID:     senderID,
		ReceiverID:   receiverID,
		Kind:         kind,
		Content:      content,
		ImagePayload: imagePayload,
	}
	if err := d.Storage.SaveMessage(msg); err != nil {
		return nil, apperrors.ErrStore(err)
	}

	// The message is durable from here on. Live push is best effort.
	if err := d.Storage.PublishEvent(models.EventFromMessage(msg)); err != nil {
		log.Printf("ERROR: Failed to publish message %d for live delivery: %v", msg.ID, err)
	}

	return msg, nil
}

// FetchHistory returns every message of the unordered (userID, friendID)
// conversation, oldest first, with the kind discriminator intact so the
// consumer renders text and image messages correctly.
func (d *DeliveryService) FetchHistory(userID, friendID string) ([]models.Message, error) {
	if userID == "" || friendID == "" {
		return nil, apperrors.ErrMissingParticipant
	}
	history, err := d.Storage.GetConversation(userID, friendID)
	if err != nil {
		return nil, apperrors.ErrStore(err)
	}
	return history, nil
}
