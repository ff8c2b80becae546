package handlers

import (
	"errors"
	"net/http"

	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal           = "internal error"
	errInvalidCredentials = "invalid credentials"
	errUserNotFound       = "user not found"
	errTodoNotFound       = "todo not found"
	errEmailTaken         = "email already registered"
	errInvalidID          = "id must be a positive integer"
	errInvalidBodyPref    = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.AbortWithStatusJSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps a service error to a status and a message safe to show the client.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var (
		ve *service.ValidationError
		ae *service.AuthError
	)
	switch {
	case errors.As(err, &ve):
		h.logAndJSONError(c, http.StatusBadRequest, ve.Error(), logKey, err, kv...)
	case errors.Is(err, service.ErrEmailTaken):
		h.logAndJSONError(c, http.StatusBadRequest, errEmailTaken, logKey, err, kv...)
	case errors.Is(err, service.ErrNotFound):
		h.logAndJSONError(c, http.StatusNotFound, errTodoNotFound, logKey, err, kv...)
	case errors.Is(err, service.ErrInvalidCredentials):
		h.logAndJSONError(c, http.StatusNotFound, errInvalidCredentials, logKey, err, kv...)
	case errors.Is(err, service.ErrUnknownSubject):
		h.logAndJSONError(c, http.StatusNotFound, errUserNotFound, logKey, err, kv...)
	case errors.As(err, &ae):
		c.Header("WWW-Authenticate", "Bearer")
		h.logAndJSONError(c, http.StatusUnauthorized, authMessage(ae.Kind), logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

func authMessage(kind service.AuthErrorKind) string {
	switch kind {
	case service.KindMissingCredential:
		return "missing bearer token"
	case service.KindExpired:
		return "token expired"
	default:
		return "could not validate credentials"
	}
}
