package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"house_management/internal/domain"     // Importing domain models
	"house_management/internal/middleware" // Signed-in account
	"house_management/internal/service"    // Console
	"house_management/internal/utils"      // Utility functions
)

// TokenTTL is the lifetime of a login token
const TokenTTL = 24 * time.Hour

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries the token and the session's account view
type AuthResponse struct {
	Token string        `json:"token"` // JWT token
	User  domain.User   `json:"user"`  // Account without password
	Pages []domain.Page `json:"pages"` // Pages the role can open
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(console *service.Console, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, err := console.Authenticate(req.Username, req.Password)
		if err != nil {
			logrus.WithField("username", req.Username).Warn("Login failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user.ID, string(user.Role), jwtSecret, TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, User: user, Pages: user.Role.Pages()})
	}
}

// MeHandler returns the signed-in account
func MeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, middleware.CurrentUser(c))
	}
}

// PagesHandler lists the pages the signed-in role can open
func PagesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"role": u.Role, "role_label": u.Role.Label(), "pages": u.Role.Pages()})
	}
}
