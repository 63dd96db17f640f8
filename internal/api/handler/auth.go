package handler

import (
	"net/http"
	"regexp"
	"time"

	"chatmate/backend/internal/apperrors"
	"chatmate/backend/internal/config"
	"chatmate/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var usernameRe = regexp.MustCompile(`^[a-z0-9_]{3,32}$`)

// IssueToken generates a signed JWT carrying the user's identity.
func IssueToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(ttl).Unix(),
		"iss": "chatmate-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates a token and returns the user ID it carries.
func ParseToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrInvalidToken
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperrors.ErrInvalidToken
	}
	return sub, nil
}

type registerRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

// Register creates a new account. Username uniqueness is owned by the
// store; a collision surfaces as a conflict, never a duplicate row.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidArg("invalid request body"))
		return
	}
	if !usernameRe.MatchString(req.Username) {
		respondError(c, apperrors.ErrInvalidUsername)
		return
	}
	if req.DisplayName == "" {
		respondError(c, apperrors.ErrInvalidDisplayName)
		return
	}
	if len(req.Password) < 8 {
		respondError(c, apperrors.ErrInvalidPassword)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &models.User{
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}
	if err := h.Storage.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks the credentials and issues an access token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.InvalidArg("invalid request body"))
		return
	}

	user, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, apperrors.ErrInvalidCredentials)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, apperrors.ErrInvalidCredentials)
		return
	}

	if err := h.Storage.UpdateLastLogin(user.ID); err != nil {
		respondError(c, err)
		return
	}

	token, err := IssueToken(user.ID, []byte(h.Cfg.JWTSecret), config.TokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
