package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of operations that return only a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes payload as the top-level JSON object. A non-empty message
// is added under "message".
func Success(c *gin.Context, code int, message string, payload gin.H) {
	body := gin.H{}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(code, body)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
