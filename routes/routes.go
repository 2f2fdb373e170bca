package routes

import (
	"Stop/controllers"
	"Stop/services/game"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures the REST surface. The realtime surface is
// mounted separately by the socket.io server.
func SetupRoutes(router *gin.Engine, registry *game.Registry) {
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/rooms", controllers.GetRooms(registry))

	api.GET("/rooms/:room_id", controllers.GetRoomInfo(registry))
}
