package middleware

import (
	"net/http"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into the usual {error} body with a 500.
// The panic value only goes to the server log.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Recovered from panic",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		c.Abort()
	})
}
