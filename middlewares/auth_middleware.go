package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/acai-pdv/services"
	"github.com/yeremiapane/acai-pdv/utils"
)

func AuthMiddleware(jwt *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authorization header missing"))
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// SessionMiddleware rejects tokens that do not belong to the operator
// currently signed in at the register.
func SessionMiddleware(ledger *services.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := ledger.CurrentUser()
		if !ok || !ledger.IsAuthenticated() || user.ID != c.GetString("user_id") {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("session ended, please log in again"))
			c.Abort()
			return
		}
		c.Next()
	}
}
