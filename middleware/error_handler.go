package middleware

import (
	"net/http"

	"homecall/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler catches panics and returns a structured error instead of
// letting them escape the handler boundary.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				utils.GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "Internal Server Error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
