package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/domain"     // Importing domain models
	"house_management/internal/middleware" // Signed-in account
	"house_management/internal/service"    // Console
	"house_management/internal/widget"     // User table
)

// UserRequest creates or replaces an account
type UserRequest struct {
	Username string      `json:"username" binding:"required"` // Login name
	Password string      `json:"password"`                    // Required when adding, blank keeps the old one when editing
	Name     string      `json:"name" binding:"required"`     // Display name
	Role     domain.Role `json:"role" binding:"required"`     // ADMIN, WATER or ELECTRIC
}

func userTable(c *gin.Context, console *service.Console, confirm widget.Confirm) *widget.UserTable {
	return widget.NewUserTable(console, middleware.CurrentUser(c).ID, confirm)
}

// ListUsersHandler returns accounts matching ?q=, one page at a time
func ListUsersHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := userTable(c, console, nil)
		table.SetSearch(c.Query("q"))
		rows := table.Rows()
		p, from, to := paginate(c, len(rows))
		c.JSON(http.StatusOK, gin.H{
			"users":       append([]widget.UserRow{}, rows[from:to]...), // Current page
			"page":        p.Page,                                       // Current page
			"page_size":   p.PageSize,                                   // Page size
			"total":       p.Total,                                      // Total matching accounts
			"total_pages": p.TotalPages,                                 // Total pages
		})
	}
}

// AddUserHandler creates an account
func AddUserHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, name and role are required"})
			return
		}
		table := userTable(c, console, nil)
		table.OpenAdd()
		table.SetFields(req.Username, req.Password, req.Name, req.Role)
		u, err := table.Submit()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// EditUserHandler replaces an account
func EditUserHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username, name and role are required"})
			return
		}
		table := userTable(c, console, nil)
		if err := table.OpenEdit(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		table.SetFields(req.Username, req.Password, req.Name, req.Role)
		u, err := table.Submit()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// RemoveUserHandler deletes an account once ?confirm=true is present.
// The signed-in account is refused.
func RemoveUserHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := userTable(c, console, confirmFromQuery(c)).Delete(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}
