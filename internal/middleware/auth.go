package middleware

import (
	"net/http"
	"strings"

	"cookhub/internal/token"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentityKey is the gin context key the verified user id is stored under.
const IdentityKey = "auth_user_id"

// AuthRequired extracts a bearer token from the Authorization header,
// verifies it and attaches the embedded user id to the request context.
func AuthRequired(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token, authorization denied"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		userID, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
			return
		}

		c.Set(IdentityKey, userID)
		c.Next()
	}
}

// Identity returns the authenticated user id set by AuthRequired.
func Identity(c *gin.Context) primitive.ObjectID {
	return c.MustGet(IdentityKey).(primitive.ObjectID)
}
