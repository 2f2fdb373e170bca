package controllers

import (
	"Stop/services/game"
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Health check
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Lists the public rooms
// @Description Same sanitized projection the updateRoomList socket event carries:
// @Description no passwords, categories or participant identities.
// @Tags rooms
// @Produce json
// @Success 200 {object} object{rooms=[]object}
// @Router /rooms [get]
func GetRooms(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": registry.ListRooms()})
	}
}

// @Summary Gives the public info of a single room
// @Tags rooms
// @Produce json
// @Param room_id path string true "Id of the room"
// @Success 200 {object} object
// @Failure 404 {object} object{error=string}
// @Router /rooms/{room_id} [get]
func GetRoomInfo(registry *game.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("room_id")

		room, err := registry.GetRoom(roomID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}

		c.JSON(http.StatusOK, room.Summary())
	}
}
