package handlers

import (
	"Stop/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// roomForAction resolves the room for a one-room-id action, emitting
// the error to the requester when it fails.
func roomForAction(registry *game.Registry, client *socket.Socket,
	args []interface{}) (*game.Room, bool) {
	if len(args) < 1 {
		client.Emit("error", gin.H{"error": "Missing room id"})
		return nil, false
	}
	roomID, ok := args[0].(string)
	if !ok {
		client.Emit("error", gin.H{"error": "Invalid room id"})
		return nil, false
	}
	room, err := registry.GetRoom(roomID)
	if err != nil {
		emitGameError(client, "error", err)
		return nil, false
	}
	return room, true
}

func HandleToggleReady(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		if err := room.ToggleReady(playerID); err != nil {
			emitGameError(client, "error", err)
		}
	}
}

func HandleStartGame(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		log.Printf("[START] Player %s requested start in room %s", playerID, room.ID)
		if err := room.StartGame(playerID); err != nil {
			log.Printf("[START-ERROR] %v", err)
			emitGameError(client, "error", err)
		}
	}
}

func HandlePressedStop(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		if err := room.PressStop(playerID); err != nil {
			emitGameError(client, "error", err)
		}
	}
}

// HandleSubmitAnswers expects the room id and a category -> answer map.
func HandleSubmitAnswers(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		if len(args) < 2 {
			client.Emit("error", gin.H{"error": "Missing answers"})
			return
		}
		raw, ok := args[1].(map[string]interface{})
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid answers payload"})
			return
		}

		answers := make(map[string]string, len(raw))
		for category, value := range raw {
			if text, ok := value.(string); ok {
				answers[category] = text
			}
		}

		if err := room.SubmitAnswers(playerID, answers); err != nil {
			emitGameError(client, "error", err)
		}
	}
}

// HandleInvalidateAnswer expects the room id, the target participant id
// and the category whose score the owner wants zeroed.
func HandleInvalidateAnswer(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing participant or category"})
			return
		}
		targetID, ok := args[1].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid participant id"})
			return
		}
		category, ok := args[2].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid category"})
			return
		}

		if err := room.InvalidateAnswer(playerID, targetID, category); err != nil {
			emitGameError(client, "error", err)
		}
	}
}

func HandleRequestNewGame(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		room, ok := roomForAction(registry, client, args)
		if !ok {
			return
		}
		log.Printf("[NEW-GAME] Player %s requested a new game in room %s", playerID, room.ID)
		if err := room.RequestNewGame(playerID); err != nil {
			emitGameError(client, "error", err)
		}
	}
}
