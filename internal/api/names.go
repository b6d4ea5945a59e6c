package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/names" // Name suggestions
)

const maxNames = 50 // Upper bound per request

// NamesHandler returns ?count= mock Thai names for test data; ?refresh=true skips the cache
func NamesHandler(suggester names.Suggester) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := strconv.Atoi(c.DefaultQuery("count", "5"))
		if err != nil || count < 0 || count > maxNames {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be between 0 and 50"})
			return
		}
		ctx := c.Request.Context()
		if r, ok := suggester.(names.Refresher); ok && c.Query("refresh") == "true" {
			c.JSON(http.StatusOK, gin.H{"names": r.Refresh(ctx, count)})
			return
		}
		c.JSON(http.StatusOK, gin.H{"names": suggester.Suggest(ctx, count)})
	}
}
