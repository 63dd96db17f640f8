package handler

import (
	"log"
	"net/http"

	"chatmate/backend/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// statusFor maps an application error code to an HTTP status.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeAlreadyExists:
		return http.StatusConflict
	case apperrors.CodeUnauthenticated:
		return http.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON. Internal failures are logged and
// replaced with a generic message so driver details never leak.
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	message := err.Error()
	if code == apperrors.CodeInternal || code == apperrors.CodeUnknown {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}
	c.JSON(statusFor(code), gin.H{"code": code, "error": message})
}

// abortError is respondError for middleware: it also stops the chain.
func abortError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.AbortWithStatusJSON(statusFor(code), gin.H{"code": code, "error": err.Error()})
}
