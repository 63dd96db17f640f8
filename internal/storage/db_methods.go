package storage

import (
	"encoding/json"
	"errors"
	"log"

	"chatmate/backend/internal/models"

	"gorm.io/gorm"
)

// eventsChannel is the Redis pub/sub channel shared by all server
// instances for live message fan-out.
const eventsChannel = "chat:events"

// SaveMessage persists a chat message. GORM fills in the server-assigned
// ID and CreatedAt, which become the canonical delivery metadata.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
		return err
	}
	return nil
}

// GetConversation returns all messages of the unordered (userA, userB)
// pair, ordered by creation time ascending.
func (s *Service) GetConversation(userA, userB string) ([]models.Message, error) {
	var history []models.Message
	err := s.DB.Where("pair_key = ?", models.PairKey(userA, userB)).
		Order("created_at asc").
		Find(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return history, nil
		}
		log.Printf("ERROR: Failed to get conversation %s/%s: %v", userA, userB, err)
		return nil, err
	}
	return history, nil
}

func (s *Service) CountMessages() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).Count(&count).Error
	return count, err
}

// PublishEvent publishes a chat event to Redis Pub/Sub so every server
// instance can route it to its own live connections.
func (s *Service) PublishEvent(event models.ChatEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the shared event channel and returns a
// channel of decoded events. Malformed payloads are logged and skipped.
// The returned channel closes when the underlying subscription does.
func (s *Service) SubscribeEvents() <-chan models.ChatEvent {
	pubsub := s.Redis.Subscribe(s.Ctx, eventsChannel)
	out := make(chan models.ChatEvent)

	go func() {
		defer pubsub.Close()
		defer close(out)

		for msg := range pubsub.Channel() {
			var event models.ChatEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("ERROR: Failed to unmarshal pub/sub event: %v", err)
				continue
			}
			out <- event
		}
	}()

	return out
}
