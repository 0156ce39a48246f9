package middleware

import (
	"context"

	"talent-marketplace-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = string(domain.KeyRequestID)
)

// RequestID tags every request with an id, reusing a well-formed
// X-Request-ID sent by the caller.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), domain.KeyRequestID, id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
