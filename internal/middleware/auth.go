package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-calendar-api/internal/auth"
)

// OperatorKey is where the auth middleware stores the token subject.
const OperatorKey = "operator"

// BearerAuth guards the tool API: Authorization: Bearer <jwt>.
func BearerAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if raw == "" || raw == c.GetHeader("Authorization") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token"})
			return
		}

		claims, err := auth.ParseToken(raw, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad token"})
			return
		}

		c.Set(OperatorKey, claims.Operator)
		c.Next()
	}
}
