package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/acai-pdv/utils"
)

// WebSocketAuthMiddleware reads the token from the query string since
// browsers cannot set headers on the upgrade request.
func WebSocketAuthMiddleware(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := jwt.ParseToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)

		c.Next()
	}
}
