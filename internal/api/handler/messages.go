package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FetchHistory handles GET /api/messages/:friendID. It returns the whole
// conversation between the caller and the friend, oldest first, including
// both text and image messages. Clients re-fetch this on reconnect, which
// is what makes the live push best-effort only.
func (h *Handler) FetchHistory(c *gin.Context) {
	history, err := h.Delivery.FetchHistory(currentUserID(c), c.Param("friendID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
