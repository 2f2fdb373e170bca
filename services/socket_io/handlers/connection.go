package handlers

import (
	"Stop/services/game"
	socketio_types "Stop/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
)

// HandleDisconnecting starts the grace-period clock in every room the
// player belongs to and drops the connection from the map. The rooms
// decide later (grace timer) whether the player is really gone.
func HandleDisconnecting(playerID string, sio *socketio_types.SocketServer,
	registry *game.Registry) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting - Player: %s", playerID)

		for _, room := range registry.RoomsWithParticipant(playerID) {
			room.HandleDisconnect(playerID)
		}

		sio.RemoveConnection(playerID)
		sio.ToAll("playersOnline", gin.H{"count": sio.ConnectionCount()})

		log.Printf("[DISCONNECT-DONE] Player disconnected: %s", playerID)
	}
}
