package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"house_management/internal/domain"     // Pages
	"house_management/internal/middleware" // Auth and access
	"house_management/internal/names"      // Name suggestions
	"house_management/internal/service"    // Console
)

// Deps are the collaborators of the HTTP handlers
type Deps struct {
	Console   *service.Console
	Names     names.Suggester
	JWTSecret string
}

// Register mounts every console route on r
func Register(r gin.IRouter, d Deps) {
	console := d.Console

	// Auth routes
	r.POST("/login", LoginHandler(console, d.JWTSecret))

	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.RequireUser(console))
	authed.GET("/me", MeHandler())
	authed.GET("/pages", PagesHandler())

	// Building tree (admin)
	structure := authed.Group("", middleware.RequirePage(console, domain.PageBuildings))
	structure.GET("/buildings", ListBuildingsHandler(console))
	structure.GET("/buildings/occupancy", OccupancyHandler(console))
	structure.POST("/buildings", AddBuildingHandler(console))
	structure.PATCH("/buildings/:id", RenameBuildingHandler(console))
	structure.DELETE("/buildings/:id", RemoveBuildingHandler(console))
	structure.POST("/buildings/:id/floors", AddFloorHandler(console))
	structure.PATCH("/floors/:id", RenameFloorHandler(console))
	structure.DELETE("/floors/:id", RemoveFloorHandler(console))
	structure.POST("/floors/:id/rooms", AddRoomHandler(console))
	structure.DELETE("/rooms/:id", RemoveRoomHandler(console))

	// Meter readings, gated per category
	meters := authed.Group("/meters/:category", RequireCategoryPage())
	meters.GET("/:period", ListMetersHandler(console))
	meters.PUT("/:period/:roomID", UpdateMeterHandler(console))

	// Residents (admin)
	residents := authed.Group("/residents", middleware.RequirePage(console, domain.PageResidents))
	residents.GET("", ListResidentsHandler(console))
	residents.GET("/options", ResidentOptionsHandler(console))
	residents.POST("", AddResidentHandler(console))
	residents.PATCH("/:id", RenameResidentHandler(console))
	residents.POST("/:id/move", MoveResidentHandler(console))
	residents.DELETE("/:id", RemoveResidentHandler(console))

	// Mock names for test data (admin)
	authed.GET("/names", middleware.RequirePage(console, domain.PageResidents), NamesHandler(d.Names))

	// Users (admin)
	users := authed.Group("/users", middleware.RequirePage(console, domain.PageUsers))
	users.GET("", ListUsersHandler(console))
	users.POST("", AddUserHandler(console))
	users.PUT("/:id", EditUserHandler(console))
	users.DELETE("/:id", RemoveUserHandler(console))
}
