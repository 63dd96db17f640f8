package handler

import (
	"net/http"
	"strings"

	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/chathub"
	"chatmate/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades an HTTP connection to a WebSocket. The token is
// verified before the upgrade: an unauthenticated connection is rejected
// and never registered, there is no anonymous fallback.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := wsToken(c)
	if tokenString == "" {
		abortError(c, apperrors.ErrMissingToken)
		return
	}

	userID, err := ParseToken(tokenString, []byte(h.Cfg.JWTSecret))
	if err != nil {
		abortError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		UserID:   userID,
		Conn:     conn,
		Hub:      h.Hub,
		Delivery: h.Delivery,
		Send:     make(chan models.ChatEvent, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}

// wsToken reads the credential from the Authorization header, falling
// back to the token query parameter for browser WebSocket clients that
// cannot set headers.
func wsToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}
