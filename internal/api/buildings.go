package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/domain"  // Importing domain models
	"house_management/internal/service" // Console
	"house_management/internal/widget"  // Confirmation errors
)

// NameRequest renames a building or floor
type NameRequest struct {
	Name string `json:"name" binding:"required"` // New name
}

// FloorRequest creates a floor
type FloorRequest struct {
	Number *int   `json:"number" binding:"required"` // Floor number, zero allowed
	Name   string `json:"name"`                      // Optional custom name
}

// FloorRenameRequest sets or clears a floor name
type FloorRenameRequest struct {
	Name string `json:"name"` // Empty restores the default label
}

// RoomRequest creates a room
type RoomRequest struct {
	Number string          `json:"number" binding:"required"` // Display number
	Type   domain.RoomType `json:"type" binding:"required"`   // SINGLE or DOUBLE
}

// ListBuildingsHandler returns the full tree
func ListBuildingsHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"buildings": console.Buildings()})
	}
}

// OccupancyHandler returns capacity and vacancies per building
func OccupancyHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"occupancy": console.Occupancy()})
	}
}

// AddBuildingHandler creates a building
func AddBuildingHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		b, err := console.AddBuilding(req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, b)
	}
}

// RenameBuildingHandler renames a building
func RenameBuildingHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := console.RenameBuilding(c.Param("id"), req.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Building renamed"})
	}
}

// removeHandler runs a cascading delete once ?confirm=true is present
func removeHandler(remove func(id string) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !confirmFromQuery(c)(message) {
			respondError(c, widget.ErrNotConfirmed)
			return
		}
		if err := remove(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// RemoveBuildingHandler deletes a building with everything inside it
func RemoveBuildingHandler(console *service.Console) gin.HandlerFunc {
	return removeHandler(console.RemoveBuilding, "Building deleted")
}

// AddFloorHandler appends a floor to a building
func AddFloorHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FloorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		f, err := console.AddFloor(c.Param("id"), *req.Number, req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, f)
	}
}

// RenameFloorHandler sets a floor's custom name
func RenameFloorHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FloorRenameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := console.RenameFloor(c.Param("id"), req.Name); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Floor renamed"})
	}
}

// RemoveFloorHandler deletes a floor with its rooms
func RemoveFloorHandler(console *service.Console) gin.HandlerFunc {
	return removeHandler(console.RemoveFloor, "Floor deleted")
}

// AddRoomHandler appends a room to a floor
func AddRoomHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		r, err := console.AddRoom(c.Param("id"), req.Number, req.Type)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, r)
	}
}

// RemoveRoomHandler deletes a room with its residents and bills
func RemoveRoomHandler(console *service.Console) gin.HandlerFunc {
	return removeHandler(console.RemoveRoom, "Room deleted")
}
