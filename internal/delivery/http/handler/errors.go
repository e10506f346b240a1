package handler

import (
	"errors"
	"net/http"

	service "campusx/internal/service/postgresql"
	"campusx/internal/statemachine"

	"github.com/gin-gonic/gin"
)

// Error kinds surfaced in the "code" field of failure payloads.
const (
	codeNotFound          = "NOT_FOUND"
	codeForbidden         = "FORBIDDEN"
	codeInvalidTransition = "INVALID_TRANSITION"
	codeBadRequest        = "BAD_REQUEST"
	codeInternal          = "INTERNAL_ERROR"
)

// writeError maps domain errors onto HTTP statuses and a structured
// {error, code} payload. Unknown errors never leak their internals.
func writeError(c *gin.Context, err error) {
	var tErr *statemachine.TransitionError
	var sErr *service.InvalidStateError

	switch {
	case errors.Is(err, service.ErrExchangeNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "code": codeNotFound})

	case errors.Is(err, service.ErrOnlyOwner),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrRoleMismatch),
		errors.Is(err, service.ErrNotItemOwner),
		errors.Is(err, service.ErrCancelNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "code": codeForbidden})

	case errors.As(err, &tErr), errors.As(err, &sErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeInvalidTransition})

	case errors.Is(err, service.ErrItemUnavailable),
		errors.Is(err, service.ErrItemLocked),
		errors.Is(err, service.ErrChatClosed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeInvalidTransition})

	case errors.Is(err, service.ErrInvalidAction),
		errors.Is(err, service.ErrOwnItem),
		errors.Is(err, service.ErrInvalidModeration),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": codeBadRequest})

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInactiveAccount),
		errors.Is(err, service.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "code": codeForbidden})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": codeInternal})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": codeBadRequest})
}
