package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/domain" // Roles and pages
)

// UserLookup resolves an account by id
type UserLookup interface {
	User(id string) (domain.User, error)
}

// loadUser re-reads the account on each request so a deleted account or a role
// change takes effect without waiting for the token to expire
func loadUser(c *gin.Context, users UserLookup) (domain.User, bool) {
	if u, ok := c.Get(KeyUser); ok {
		return u.(domain.User), true // Already loaded earlier in the chain
	}
	id := UserID(c)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.User{}, false
	}
	u, err := users.User(id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return domain.User{}, false
	}
	u = u.Public()
	c.Set(KeyUser, u)
	return u, true
}

// RequireUser loads the signed-in account into the context
func RequireUser(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadUser(c, users); !ok {
			return
		}
		c.Next()
	}
}

// RequirePage lets the request through only when the account's role can open page
func RequirePage(users UserLookup, page domain.Page) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, users)
		if !ok {
			return
		}
		if !u.Role.CanAccess(page) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to " + string(page) + " requires another role"})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the account loaded by RequireUser or RequirePage
func CurrentUser(c *gin.Context) domain.User {
	u, _ := c.Get(KeyUser)
	user, _ := u.(domain.User)
	return user
}
