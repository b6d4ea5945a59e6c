package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/utils" // JWT utility functions
)

// Context keys set by the middlewares
const (
	KeyUserID = "userID" // Account id from the token
	KeyUser   = "user"   // Account re-read by RequirePage
)

// JWTAuthMiddleware validates the bearer token and stores the account id
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "), secret) // Parse the JWT token
		if err != nil || claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(KeyUserID, claims.UserID) // Store userID in context
		c.Next()
	}
}

// UserID returns the account id stored by JWTAuthMiddleware
func UserID(c *gin.Context) string {
	return c.GetString(KeyUserID)
}
