package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform wrapper every endpoint returns.
// success=false implies data is null and message/errors describe the failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Errors  []string    `json:"errors"`
}

func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Errors:  []string{},
	})
}

func Error(c *gin.Context, statusCode int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	c.JSON(statusCode, Envelope{
		Success: false,
		Message: message,
		Data:    nil,
		Errors:  errs,
	})
}

func InternalServerError(c *gin.Context, message string, errs ...string) {
	Error(c, 500, message, errs...)
}
