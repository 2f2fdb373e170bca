package game

import (
	game_models "Stop/models/game"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoomsSortedAndSanitized(t *testing.T) {
	fake := &fakeBroadcaster{}
	registry := NewRegistry(fake, testConfig())

	second := validSettings()
	second.Name = "Zebra"
	_, err := registry.CreateRoom("p1", "Paula", second)
	require.NoError(t, err)

	first := validSettings()
	first.Name = "Abacaxi"
	first.Private = true
	first.Password = "segredo"
	room, err := registry.CreateRoom("p2", "Pedro", first)
	require.NoError(t, err)

	rooms := registry.ListRooms()
	require.Len(t, rooms, 2)
	assert.Equal(t, "Abacaxi", rooms[0].Name)
	assert.Equal(t, "Zebra", rooms[1].Name)

	assert.True(t, rooms[0].Private)
	assert.Equal(t, 1, rooms[0].Players)
	assert.Equal(t, game_models.StateWaiting, rooms[0].Status)

	// Every mutation refreshed the public listing
	assert.GreaterOrEqual(t, fake.count("updateRoomList"), 2)

	// The password never leaves the room
	summary := room.Summary()
	assert.Equal(t, room.ID, summary.ID)
}

func TestDestroyRoom(t *testing.T) {
	fake := &fakeBroadcaster{}
	registry := NewRegistry(fake, testConfig())

	room, err := registry.CreateRoom("owner", "Alice", validSettings())
	require.NoError(t, err)

	registry.DestroyRoom(room.ID, false)

	_, err = registry.GetRoom(room.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, registry.ListRooms())
	assert.Equal(t, 0, fake.count("ownerDestroyedRoom"))

	// Destroying twice is harmless
	registry.DestroyRoom(room.ID, true)
	assert.Equal(t, 0, fake.count("ownerDestroyedRoom"))

	// Operations on the destroyed handle fail cleanly
	assert.Equal(t, KindNotFound, KindOf(room.ToggleReady("owner")))
}

func TestRoomsWithParticipant(t *testing.T) {
	fake := &fakeBroadcaster{}
	registry := NewRegistry(fake, testConfig())

	roomA, err := registry.CreateRoom("alice", "Alice", validSettings())
	require.NoError(t, err)
	_, err = registry.CreateRoom("bob", "Bob", validSettings())
	require.NoError(t, err)

	rooms := registry.RoomsWithParticipant("alice")
	require.Len(t, rooms, 1)
	assert.Equal(t, roomA.ID, rooms[0].ID)

	assert.Empty(t, registry.RoomsWithParticipant("nobody"))
}
