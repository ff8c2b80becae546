package handlers

import (
	"strings"
	"time"

	"todo_service/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userCtxKey      = "user"
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// authMiddleware resolves the bearer token and stores the caller in the Gin context.
// A missing or non-bearer Authorization header is reported as a missing credential.
func (h *Handler) authMiddleware(c *gin.Context) {
	user, err := h.services.Resolve(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
	if err != nil {
		h.respondError(c, "auth_rejected", err, "path", c.Request.URL.Path)
		return
	}

	c.Set(userCtxKey, user)
	c.Next()
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUser returns the user set by authMiddleware.
func currentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userCtxKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}

// requestLogger tags every request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)

	c.Next()

	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"request_id", id,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
	)
}
