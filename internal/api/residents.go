package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/service" // Console
	"house_management/internal/tree"    // Placement
	"house_management/internal/widget"  // Resident table and mover
)

// ResidentRequest adds a resident through the building -> floor -> room cascade
type ResidentRequest struct {
	Name       string `json:"name" binding:"required"`        // Full name
	BuildingID string `json:"building_id" binding:"required"` // Chosen building
	FloorID    string `json:"floor_id" binding:"required"`    // Chosen floor
	RoomID     string `json:"room_id" binding:"required"`     // Chosen room with space
}

// MoveRequest moves a resident to another room
type MoveRequest struct {
	ToRoomID string `json:"to_room_id" binding:"required"` // Destination room
}

// ListResidentsHandler returns residents matching ?q=, one page at a time
func ListResidentsHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := widget.NewResidentTable(console, nil)
		table.SetSearch(c.Query("q"))
		rows := table.Rows()
		p, from, to := paginate(c, len(rows))
		c.JSON(http.StatusOK, gin.H{
			"residents":   append([]tree.ResidentRow{}, rows[from:to]...), // Current page
			"page":        p.Page,                                         // Current page
			"page_size":   p.PageSize,                                     // Page size
			"total":       p.Total,                                        // Total matching residents
			"total_pages": p.TotalPages,                                   // Total pages
		})
	}
}

// ResidentOptionsHandler returns the cascade choices for ?building_id=&floor_id=
func ResidentOptionsHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := widget.NewResidentTable(console, nil)
		table.OpenAdd()
		table.SelectBuilding(c.Query("building_id"))
		table.SelectFloor(c.Query("floor_id"))
		c.JSON(http.StatusOK, table.Options())
	}
}

// AddResidentHandler places a new resident
func AddResidentHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResidentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, building, floor and room are required"})
			return
		}
		table := widget.NewResidentTable(console, nil)
		table.OpenAdd()
		table.SetName(req.Name)
		table.SelectBuilding(req.BuildingID)
		table.SelectFloor(req.FloorID)
		table.SelectRoom(req.RoomID)
		res, err := table.Submit()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"resident": res, "room_id": req.RoomID})
	}
}

// RenameResidentHandler changes a resident's name; the location is not editable here
func RenameResidentHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req NameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		table := widget.NewResidentTable(console, nil)
		if err := table.OpenEdit(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		table.SetName(req.Name)
		res, err := table.Submit()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"resident": res})
	}
}

// MoveResidentHandler moves a resident out of its current room
func MoveResidentHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MoveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		res, fromRoomID, err := console.FindResident(c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		mover := widget.NewMoveCoordinator(console, nil)
		item := widget.ResidentItem{ID: res.ID, Name: res.Name, RoomID: fromRoomID}
		if err := mover.Click(item, widget.TargetRow); err != nil {
			respondError(c, err)
			return
		}
		if err := mover.Drop(req.ToRoomID); err != nil {
			respondError(c, err) // A full room answers 409 with both rooms unchanged
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Resident moved", "from_room_id": fromRoomID, "to_room_id": req.ToRoomID})
	}
}

// RemoveResidentHandler deletes a resident once ?confirm=true is present
func RemoveResidentHandler(console *service.Console) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := widget.NewResidentTable(console, confirmFromQuery(c))
		if err := table.Delete(c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Resident deleted"})
	}
}
