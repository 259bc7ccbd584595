package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes used in JSON envelopes
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeInternal           = "INTERNAL_ERROR"
	CodeBadGateway         = "BAD_GATEWAY"
	CodeGatewayTimeout     = "GATEWAY_TIMEOUT"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// Write sends an envelope with an explicit status, used when a handler
// reports degraded state alongside data
func Write(c *gin.Context, status int, success bool, data interface{}) {
	c.JSON(status, Response{
		Success: success,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, message string, details string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message, "")
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message, "")
}

func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, CodeBadGateway, message, "")
}

func GatewayTimeout(c *gin.Context, message string) {
	Error(c, http.StatusGatewayTimeout, CodeGatewayTimeout, message, "")
}
