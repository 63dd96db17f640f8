package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Image payloads travel base64-encoded in the same event frame.
	maxMessageSize = 1 << 20
)

// WebSocketClient implements the chathub.Client interface over a
// gorilla/websocket connection.
type WebSocketClient struct {
	UserID   string
	Conn     *websocket.Conn
	Hub      *ManagerService
	Delivery *DeliveryService
	Send     chan models.ChatEvent

	// mu guards closed. The hub can close a dropped connection while its
	// read pump is still processing a frame, so every producer on Send
	// must check closed under the lock first.
	mu     sync.Mutex
	closed bool
}

func (c *WebSocketClient) GetUserID() string                       { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatEvent { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump. The read
// pump stops on its own once the connection is closed. Safe to call from
// both the hub and the pumps.
func (c *WebSocketClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

// readPump reads inbound events, stamps them with the verified identity
// and hands them to the delivery service. The sender field from the wire
// is never trusted.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Close()
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var event models.ChatEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("Error decoding JSON from client %s: %v", c.UserID, err)
			continue
		}

		if _, err := c.Delivery.Send(c.UserID, event.ReceiverID, event.Kind, event.Content, event.ImagePayload); err != nil {
			// Validation failures go back to this connection only; nothing
			// was persisted or delivered.
			c.reportError(event.ReceiverID, err)
		}
	}
}

// reportError pushes an error event to this connection's own send channel
// without blocking the read loop. Internal failures are replaced with a
// generic message, matching the HTTP error responses.
func (c *WebSocketClient) reportError(receiverID string, err error) {
	message := err.Error()
	if apperrors.CodeOf(err) == apperrors.CodeInternal {
		message = "internal server error"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.Send <- models.ChatEvent{
		Kind:       models.EventError,
		ReceiverID: receiverID,
		Content:    message,
	}:
	default:
	}
}

// writePump reads events from the Send channel and writes them to the
// WebSocket, keeping the connection alive with periodic pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub, close the WS connection.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.UserID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Flush whatever else is already queued into the same frame.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				extra, _ := json.Marshal(next)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
