package chathub_test

import (
	"testing"
	"time"

	"chatmate/backend/internal/chathub"
	"chatmate/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestHub_RegisterUnregister(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	clientA := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A")

	hub.UnregisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.NotContains(t, hub.Clients, "user_A")
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	first := newMockClient("user_A")
	second := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- first
	hub.RegisterCh <- second
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, hub.Clients["user_A"], 2, "Registering must not evict existing connections")

	hub.UnregisterCh <- first
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, hub.Clients["user_A"], 1, "Other connections of the same user must survive")
}

func TestHub_UnregisterIsIdempotent(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	clientA := newMockClient("user_A")
	clientB := newMockClient("user_A")

	go hub.Run()

	hub.RegisterCh <- clientA
	hub.RegisterCh <- clientB
	time.Sleep(100 * time.Millisecond)

	hub.UnregisterCh <- clientA
	hub.UnregisterCh <- clientA // second unregister of the same connection
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, hub.Clients["user_A"], 1)
	assert.Same(t, clientB, hub.Clients["user_A"][0].(*MockClient))
}

func TestHub_RoutesToParticipantsOnly(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	sender := newMockClient("user_A")
	receiver := newMockClient("user_B")
	bystander := newMockClient("user_C")

	go hub.Run()

	hub.RegisterCh <- sender
	hub.RegisterCh <- receiver
	hub.RegisterCh <- bystander
	time.Sleep(100 * time.Millisecond)

	storageMock.Events <- models.ChatEvent{
		ID: 1, SenderID: "user_A", ReceiverID: "user_B",
		Kind: models.MessageText, Content: "hello",
	}
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, receiver.DrainEvents(), 1, "receiver must get the event")
	assert.Len(t, sender.DrainEvents(), 1, "sender's own connections must see the event too")
	assert.Empty(t, bystander.DrainEvents(), "uninvolved users must not receive the event")
}

func TestHub_RoutesToEveryConnectionOfReceiver(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	phone := newMockClient("user_B")
	laptop := newMockClient("user_B")

	go hub.Run()

	hub.RegisterCh <- phone
	hub.RegisterCh <- laptop
	time.Sleep(100 * time.Millisecond)

	storageMock.Events <- models.ChatEvent{
		ID: 7, SenderID: "user_A", ReceiverID: "user_B",
		Kind: models.MessageText, Content: "ping",
	}
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, phone.DrainEvents(), 1)
	assert.Len(t, laptop.DrainEvents(), 1)
}

func TestHub_OfflineReceiverIsNotAnError(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	go hub.Run()

	// Nobody registered: the event is simply dropped and the hub keeps
	// running.
	storageMock.Events <- models.ChatEvent{
		ID: 2, SenderID: "user_A", ReceiverID: "user_B",
		Kind: models.MessageText, Content: "anyone there?",
	}
	time.Sleep(100 * time.Millisecond)

	clientA := newMockClient("user_A")
	hub.RegisterCh <- clientA
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, hub.Clients, "user_A", "hub must stay responsive after routing to an offline user")
}

func TestHub_SlowConnectionIsDropped(t *testing.T) {
	storageMock := newMockStorage()
	hub := chathub.NewManagerService(storageMock)

	slow := newSlowMockClient("user_B")
	healthy := newMockClient("user_B")

	go hub.Run()

	hub.RegisterCh <- slow
	hub.RegisterCh <- healthy
	time.Sleep(100 * time.Millisecond)

	storageMock.Events <- models.ChatEvent{
		ID: 3, SenderID: "user_A", ReceiverID: "user_B",
		Kind: models.MessageText, Content: "hello",
	}
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, hub.Clients["user_B"], 1, "slow connection must be dropped")
	assert.True(t, slow.closed, "dropped connection must be closed")
	assert.Len(t, healthy.DrainEvents(), 1, "healthy connection must still receive the event")
}
