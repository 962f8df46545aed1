package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salesnav/utils"
)

// JWTAuthAdminMiddleware accepts bearer tokens issued by the admin login.
func JWTAuthAdminMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, utils.ErrorResponse{Error: "Admin access is not configured"})
			return
		}
		adminID, err := utils.ExtractIDFromToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Unauthorized admin access"})
			return
		}

		c.Set("adminId", adminID)
		c.Set("isAdmin", true)
		c.Next()
	}
}
