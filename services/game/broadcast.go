package game

// Broadcaster is the narrow slice of the socket server the game layer
// emits through. Keeping it an interface lets the room logic run in
// tests without a socket.io server behind it.
type Broadcaster interface {
	// ToRoom emits an event to every connection in a room.
	ToRoom(roomID string, event string, payload interface{})
	// ToPlayer emits an event to a single player's connection, if any.
	ToPlayer(playerID string, event string, payload interface{})
	// ToAll emits an event to every connected client.
	ToAll(event string, payload interface{})
}
