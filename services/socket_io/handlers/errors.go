package handlers

import (
	"Stop/services/game"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// emitGameError delivers a rejected request back to the requester only,
// on the given event ("error" for most actions, "settingsError" for the
// settings path).
func emitGameError(client *socket.Socket, event string, err error) {
	var gameErr *game.GameError
	if errors.As(err, &gameErr) {
		client.Emit(event, gin.H{"error": gameErr.Message, "kind": string(gameErr.Kind)})
		return
	}
	client.Emit(event, gin.H{"error": err.Error()})
}

// intArg converts a numeric socket.io argument. JSON numbers arrive as
// float64.
func intArg(value interface{}) int {
	switch n := value.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	}
	return 0
}

func stringSliceArg(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
