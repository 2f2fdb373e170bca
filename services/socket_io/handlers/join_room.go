package handlers

import (
	"Stop/services/game"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleJoinRoom runs the join gate (password, capacity, game in
// progress) and puts the connection in the socket.io room. The caller
// is expected to follow with playerReady to establish its session.
func HandleJoinRoom(registry *game.Registry, client *socket.Socket,
	playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}
		password := ""
		if len(args) >= 2 {
			password, _ = args[1].(string)
		}

		log.Printf("[JOIN] Player %s requesting to join room %s", playerID, roomID)

		room, err := registry.GetRoom(roomID)
		if err != nil {
			emitGameError(client, "error", err)
			return
		}
		if err := room.CanJoin(playerID, password); err != nil {
			log.Printf("[JOIN-ERROR] Player %s rejected from room %s: %v", playerID, roomID, err)
			emitGameError(client, "error", err)
			return
		}

		client.Join(socket.Room(roomID))
		client.Emit("joinSuccess", gin.H{"room_id": roomID})
	}
}

// HandlePlayerReady is the session-establishing handshake, sent once
// the client considers its connection live. Idempotent: reconnects hit
// the same event.
func HandlePlayerReady(registry *game.Registry, client *socket.Socket,
	playerID, displayName string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room id"})
			return
		}
		roomID, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room id"})
			return
		}

		room, err := registry.GetRoom(roomID)
		if err != nil {
			emitGameError(client, "error", err)
			return
		}

		// Reconnecting clients may go straight to playerReady without a
		// fresh joinRoom, so make sure the socket is in the room.
		client.Join(socket.Room(roomID))

		if err := room.EstablishSession(playerID, displayName); err != nil {
			emitGameError(client, "error", err)
		}
	}
}
