package middleware

import (
	"errors"
	"net/http"

	"talent-marketplace-backend/internal/delivery/http/response"
	"talent-marketplace-backend/pkg/apperror"
	"talent-marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error pushed with c.Error. AppErrors keep
// their code and message; anything else is logged and reported as a
// generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError || appErr.Err != nil {
				logger.Log.Warn("Request failed",
					"request_id", c.GetString(requestIDKey),
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		logger.Log.Error("Internal server error",
			"request_id", c.GetString(requestIDKey),
			"path", c.FullPath(),
			"error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
