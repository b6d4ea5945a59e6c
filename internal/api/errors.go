package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Query parsing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"house_management/internal/service" // Console errors
	"house_management/internal/tree"    // Store errors
	"house_management/internal/widget"  // Widget errors
)

// statusOf maps a store or widget error to an HTTP status
func statusOf(err error) int {
	switch {
	case errors.Is(err, tree.ErrValidation), errors.Is(err, widget.ErrIncomplete),
		errors.Is(err, widget.ErrDraftRejected), errors.Is(err, widget.ErrNoPendingMove):
		return http.StatusBadRequest
	case errors.Is(err, tree.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tree.ErrCapacityExceeded):
		return http.StatusConflict
	case errors.Is(err, widget.ErrNotConfirmed):
		return http.StatusPreconditionRequired
	case errors.Is(err, widget.ErrSelfDelete):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": ...} with the mapped status
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("Unhandled request error") // Local failures only, remote ones never reach here
		c.JSON(status, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// confirmFromQuery approves the destructive action only when ?confirm=true
func confirmFromQuery(c *gin.Context) widget.Confirm {
	ok := c.Query("confirm") == "true"
	return func(string) bool { return ok }
}

// page is one slice of a filtered list
type page struct {
	Page       int `json:"page"`        // Current page
	PageSize   int `json:"page_size"`   // Page size
	Total      int `json:"total"`       // Total matching rows
	TotalPages int `json:"total_pages"` // Total pages
}

// paginate reads page and page_size and returns the bounds into a list of total rows
func paginate(c *gin.Context, total int) (page, int, int) {
	p := page{Page: 1, PageSize: 20, Total: total} // Defaults
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		p.Page = v
	}
	if v, err := strconv.Atoi(c.Query("page_size")); err == nil && v > 0 && v <= 100 {
		p.PageSize = v
	}
	p.TotalPages = (total + p.PageSize - 1) / p.PageSize // Calculate total pages
	from := min((p.Page-1)*p.PageSize, total)
	to := min(from+p.PageSize, total)
	return p, from, to
}
