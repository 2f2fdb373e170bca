package socketio_utils

import (
	"Stop/middleware"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// VerifyUserConnection checks the handshake auth data of a new socket
// connection and resolves the player's stable identity from its JWT.
// Identity resolution itself belongs to the external authentication
// service; the claims are trusted once the token verifies.
func VerifyUserConnection(client *socket.Socket) (success bool, playerID, displayName string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	token, exists := authData["authorization"].(string)
	if !exists {
		fmt.Println("No authorization token provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return false, "", ""
	}

	playerID, displayName, err := middleware.Socketio_JWT_decoder(token)
	if err != nil {
		fmt.Println("Error decoding JWT:", err)
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field and with the 'Bearer ' prefix.",
		})
		return false, "", ""
	}

	// Some clients send the display name alongside the token instead of
	// inside it.
	if displayName == "" {
		displayName, _ = authData["username"].(string)
	}
	if displayName == "" {
		displayName = playerID
	}

	return true, playerID, displayName
}
