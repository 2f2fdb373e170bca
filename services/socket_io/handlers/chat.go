package handlers

import (
	"Stop/services/game"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleStopMessage appends a chat message to the room's bounded
// history; the game layer rebroadcasts it as newStopMessage.
func HandleStopMessage(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing message text"})
			return
		}
		text, ok := args[1].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid message text"})
			return
		}
		var mentions []string
		if len(args) >= 3 {
			mentions = stringSliceArg(args[2])
		}

		if err := room.AddChatMessage(playerID, text, mentions); err != nil {
			emitGameError(client, "error", err)
		}
	}
}
