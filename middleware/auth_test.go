package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestSocketioJWTDecoder(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"sub":      "player-42",
		"username": "Bruno",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	playerID, displayName, err := Socketio_JWT_decoder(signed)
	require.NoError(t, err)
	assert.Equal(t, "player-42", playerID)
	assert.Equal(t, "Bruno", displayName)

	// The Bearer prefix is optional
	playerID, _, err = Socketio_JWT_decoder("Bearer " + signed)
	require.NoError(t, err)
	assert.Equal(t, "player-42", playerID)
}

func TestSocketioJWTDecoderRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// Wrong signing key
	bad := signToken(t, "other-secret", jwt.MapClaims{"sub": "player-42"})
	_, _, err := Socketio_JWT_decoder(bad)
	assert.Error(t, err)

	// Expired token
	expired := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "player-42",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, _, err = Socketio_JWT_decoder(expired)
	assert.Error(t, err)

	// No subject claim
	anonymous := signToken(t, "test-secret", jwt.MapClaims{"username": "Bruno"})
	_, _, err = Socketio_JWT_decoder(anonymous)
	assert.Error(t, err)

	_, _, err = Socketio_JWT_decoder("not-a-token")
	assert.Error(t, err)
}
