package middleware

import (
	"net/http"

	"homecall/models"

	"github.com/gin-gonic/gin"
)

// SessionSource reports the current session for one role.
type SessionSource interface {
	Session() *models.Session
}

// RequireSession rejects requests when the role's session is not active.
// Dashboard views are only reachable while logged in.
func RequireSession(src SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !src.Session().Active() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "not logged in",
			})
			return
		}
		c.Next()
	}
}
