package handlers

import (
	"Stop/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleUpdateRoomSettings is the owner-only settings mutation path.
// Failures go back on settingsError; success is confirmed with
// settingsUpdateSuccess while the new snapshot is broadcast to the
// whole room by the game layer.
func HandleUpdateRoomSettings(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 2 {
			client.Emit("settingsError", gin.H{"error": "Missing room id or settings"})
			return
		}
		roomID, ok := args[0].(string)
		if !ok {
			client.Emit("settingsError", gin.H{"error": "Invalid room id"})
			return
		}
		raw, ok := args[1].(map[string]interface{})
		if !ok {
			client.Emit("settingsError", gin.H{"error": "Invalid settings payload"})
			return
		}

		room, err := registry.GetRoom(roomID)
		if err != nil {
			emitGameError(client, "settingsError", err)
			return
		}

		settings := parseRoomSettings(raw)
		if err := room.UpdateSettings(playerID, settings); err != nil {
			log.Printf("[SETTINGS-ERROR] Room %s: %v", roomID, err)
			emitGameError(client, "settingsError", err)
			return
		}

		client.Emit("settingsUpdateSuccess", gin.H{"room_id": roomID})
	}
}
