package api

import (
	"encoding/json" // Numeric draft
	"net/http"      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/domain"     // Importing domain models
	"house_management/internal/middleware" // Signed-in account
	"house_management/internal/service"    // Console
	"house_management/internal/tree"       // Validation errors
	"house_management/internal/widget"     // Meter editor
)

// MeterRequest commits a reading
type MeterRequest struct {
	Units json.Number `json:"units" binding:"required"` // Unit count as entered
}

// RequireCategoryPage checks the :category path param against the role's pages.
// It must run after middleware.RequireUser.
func RequireCategoryPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, ok := domain.ParseCategory(c.Param("category"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown meter category"})
			return
		}
		if !middleware.CurrentUser(c).Role.CanAccess(cat.Page()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to " + string(cat.Page()) + " requires another role"})
			return
		}
		c.Set("category", cat)
		c.Next()
	}
}

func category(c *gin.Context) domain.Category {
	v, _ := c.Get("category")
	cat, _ := v.(domain.Category)
	return cat
}

// ListMetersHandler returns every room's reading for a category and month
func ListMetersHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		period := c.Param("period")
		if !domain.ValidPeriod(period) {
			respondError(c, tree.ErrValidation)
			return
		}
		cat := category(c)
		c.JSON(http.StatusOK, gin.H{
			"category":   cat,                                // Water or electricity
			"period":     period,                             // YYYY-MM
			"unit_price": console.Tariff().UnitPrice(cat),    // Price per unit
			"readings":   console.MeterReadings(cat, period), // One entry per room
		})
	}
}

// UpdateMeterHandler commits one room's reading through the meter editor
func UpdateMeterHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MeterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Units must be a number"})
			return
		}
		board := widget.NewMeterBoard(console, category(c), c.Param("period"))
		if !domain.ValidPeriod(board.Period()) {
			respondError(c, tree.ErrValidation)
			return
		}
		editor, err := board.Editor(c.Param("roomID"))
		if err != nil {
			respondError(c, err)
			return
		}
		editor.Edit()
		editor.SetDraft(req.Units.String())
		if err := editor.Save(); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"room_id": c.Param("roomID"),  // Room
			"period":  board.Period(),     // YYYY-MM
			"units":   editor.Committed(), // Committed units
			"amount":  editor.Price(),     // Computed amount
			"bill":    editor.Bill(),      // Whole bill after the update
		})
	}
}
