package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pagehits/counthub/pkg/response"
)

// Recovery converts panics into the API's standard 500 error body.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered", zap.Any("error", err))
				response.InternalError(c, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
