package chathub

import (
	"log"

	"chatmate/backend/internal/models"
	"chatmate/backend/internal/storage"
)

// ManagerService is the connection registry of one server process. It maps
// user identities to their live connections and routes published events to
// the conversation participants. All registry state is owned by the Run
// loop; connect, disconnect and routing are serialized through channels,
// so no operation touches the Clients map concurrently and none performs
// I/O while the loop handles it.
type ManagerService struct {
	// Clients maps a user ID to every live connection the user owns.
	Clients map[string][]Client

	RegisterCh   chan Client
	UnregisterCh chan Client

	// PubSubCh receives events decoded from the shared Redis channel.
	PubSubCh chan models.ChatEvent

	Storage storage.Storage
}

// NewManagerService constructs a hub bound to the shared storage.
func NewManagerService(s storage.Storage) *ManagerService {
	return &ManagerService{
		Clients:      make(map[string][]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.ChatEvent),
		Storage:      s,
	}
}

// Run is the hub's main loop. It must run in its own goroutine before any
// connection is registered.
func (m *ManagerService) Run() {
	m.StartPubSubListener()

	for {
		select {
		case client := <-m.RegisterCh:
			userID := client.GetUserID()
			m.Clients[userID] = append(m.Clients[userID], client)
			log.Printf("Registered connection for user %s (%d live)", userID, len(m.Clients[userID]))

		case client := <-m.UnregisterCh:
			m.removeClient(client)

		case event := <-m.PubSubCh:
			m.routeEvent(event)
		}
	}
}

// removeClient drops one connection from the registry. Unregistering a
// connection that is already gone is a no-op, and other connections of the
// same user are left untouched.
func (m *ManagerService) removeClient(client Client) {
	userID := client.GetUserID()
	clients := m.Clients[userID]
	for i, c := range clients {
		if c == client {
			m.Clients[userID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(m.Clients[userID]) == 0 {
		delete(m.Clients, userID)
	}
}

// routeEvent delivers an event to every live connection of the two
// conversation participants, and nobody else. Zero delivered connections
// is not an error: the recipient is offline and will find the message in
// the history fetch.
func (m *ManagerService) routeEvent(event models.ChatEvent) {
	m.deliverTo(event.ReceiverID, event)
	if event.SenderID != event.ReceiverID {
		m.deliverTo(event.SenderID, event)
	}
}

// deliverTo hands the event to each connection's buffered send channel
// without blocking. A connection whose buffer is full is dropped so one
// slow consumer cannot stall delivery to others.
func (m *ManagerService) deliverTo(userID string, event models.ChatEvent) {
	var slow []Client
	for _, client := range m.Clients[userID] {
		select {
		case client.GetSendChannel() <- event:
		default:
			slow = append(slow, client)
		}
	}
	for _, client := range slow {
		log.Printf("WARNING: Dropping slow connection for user %s", userID)
		m.removeClient(client)
		client.Close()
	}
}
