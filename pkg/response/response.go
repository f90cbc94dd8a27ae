package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the stable error body shape of the counter API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error writes the error body with the given HTTP status.
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, APIError{Code: httpStatus, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func MethodNotAllowed(c *gin.Context, message string) {
	Error(c, http.StatusMethodNotAllowed, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
