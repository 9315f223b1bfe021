package utils

import "github.com/gin-gonic/gin"

// SuccessResponse wraps a payload in the shared response envelope.
func SuccessResponse(message string, data interface{}) gin.H {
	return gin.H{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// ErrorResponse builds the shared error envelope. detail may be empty for
// errors whose internals must not leak to the client.
func ErrorResponse(message, detail string) gin.H {
	resp := gin.H{
		"success": false,
		"error":   message,
	}
	if detail != "" {
		resp["detail"] = detail
	}
	return resp
}
