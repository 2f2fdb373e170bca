package middleware

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// The token itself comes from the external authentication service; we
// only verify and read it here.
func jwtKey() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("secret")
}

// Socketio_JWT_decoder extracts the player identity from the JWT sent
// in the socket.io handshake auth data ("Bearer " prefix optional).
// Returns the stable player id (subject) and the display name claim.
func Socketio_JWT_decoder(tokenString string) (playerID string, displayName string, err error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return jwtKey(), nil
	})
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("unexpected token claims")
	}

	playerID, _ = claims["sub"].(string)
	if playerID == "" {
		return "", "", errors.New("token is missing the subject claim")
	}
	displayName, _ = claims["username"].(string)

	return playerID, displayName, nil
}
