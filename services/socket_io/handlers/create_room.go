package handlers

import (
	game_models "Stop/models/game"
	"Stop/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleCreateRoom creates a room with the requester as its owner and
// immediately establishes the owner's session in it.
func HandleCreateRoom(registry *game.Registry, client *socket.Socket,
	playerID, displayName string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[CREATE] HandleCreateRoom - Player: %s, Socket ID: %s", playerID, client.Id())

		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room settings"})
			return
		}
		raw, ok := args[0].(map[string]interface{})
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room settings payload"})
			return
		}

		settings := parseRoomSettings(raw)
		room, err := registry.CreateRoom(playerID, displayName, settings)
		if err != nil {
			log.Printf("[CREATE-ERROR] %s could not create room: %v", playerID, err)
			emitGameError(client, "error", err)
			return
		}

		client.Join(socket.Room(room.ID))
		client.Emit("joinSuccess", gin.H{"room_id": room.ID})

		if err := room.EstablishSession(playerID, displayName); err != nil {
			emitGameError(client, "error", err)
		}
	}
}

func parseRoomSettings(raw map[string]interface{}) game_models.RoomSettings {
	settings := game_models.RoomSettings{}
	settings.Name, _ = raw["name"].(string)
	settings.Private, _ = raw["private"].(bool)
	settings.Password, _ = raw["password"].(string)
	settings.Categories = stringSliceArg(raw["categories"])
	settings.MaxPlayers = intArg(raw["max_players"])
	settings.TotalRounds = intArg(raw["total_rounds"])
	return settings
}
