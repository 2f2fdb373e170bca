package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track player id -> socket connection
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[playerID] = socket
}

func (s *SocketServer) RemoveConnection(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, playerID)
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[playerID]
	return socket, exists
}

func (s *SocketServer) ConnectionCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.UserConnections)
}

// The three methods below make SocketServer the game layer's
// Broadcaster, so room logic never touches the socket.io API directly.

func (s *SocketServer) ToRoom(roomID string, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(roomID)).Emit(event, payload)
}

func (s *SocketServer) ToPlayer(playerID string, event string, payload interface{}) {
	if client, exists := s.GetConnection(playerID); exists {
		client.Emit(event, payload)
	}
}

func (s *SocketServer) ToAll(event string, payload interface{}) {
	s.Sio_server.Sockets().Emit(event, payload)
}
