package handler

import (
	"net/http"
	"strconv"

	"chatmate/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type sendRequestBody struct {
	Username string `json:"username"`
}

// SendFriendRequest handles POST /api/friends/requests.
func (h *Handler) SendFriendRequest(c *gin.Context) {
	var body sendRequestBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Username == "" {
		respondError(c, apperrors.InvalidArg("username is required"))
		return
	}

	req, err := h.Friends.SendRequest(currentUserID(c), body.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListIncomingRequests handles GET /api/friends/requests.
func (h *Handler) ListIncomingRequests(c *gin.Context) {
	requests, err := h.Friends.ListIncomingRequests(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}

// AcceptFriendRequest handles POST /api/friends/requests/:id/accept.
func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	req, err := h.Friends.AcceptRequest(requestID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// DeclineFriendRequest handles POST /api/friends/requests/:id/decline.
func (h *Handler) DeclineFriendRequest(c *gin.Context) {
	requestID, ok := requestIDParam(c)
	if !ok {
		return
	}
	req, err := h.Friends.DeclineRequest(requestID, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// ListFriends handles GET /api/friends.
func (h *Handler) ListFriends(c *gin.Context) {
	friendList, err := h.Friends.ListFriends(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friendList)
}

func requestIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, apperrors.InvalidArg("invalid request id"))
		return 0, false
	}
	return uint(id), true
}
