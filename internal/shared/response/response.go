package response

import (
	"github.com/gin-gonic/gin"
)

// Error bodies share one envelope so the client can always read
// error.code/error.message regardless of which endpoint failed.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, errorEnvelope{
		Error: errorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// Message writes the `{"message": ...}` acknowledgement body used by the
// registration and approval endpoints.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
