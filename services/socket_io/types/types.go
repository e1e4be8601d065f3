package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer wraps the socket.io server and a map of live connections.
// It is used to handle socket.io connections town-wide.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track playerID -> socket connections
	PlayerConnections map[string]*socket.Socket
	mutex             sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		Sio_server:        socket.NewServer(nil, nil),
		PlayerConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerConnections[playerID] = client
}

func (s *SocketServer) RemoveConnection(playerID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.PlayerConnections, playerID)
}

func (s *SocketServer) GetConnection(playerID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.PlayerConnections[playerID]
	return client, exists
}

// RoomEmitter broadcasts events to every socket in one town's room. It backs
// the town package's Broadcaster interface.
type RoomEmitter struct {
	server *socket.Server
	room   socket.Room
}

// Room returns the broadcaster for the given town's room.
func (s *SocketServer) Room(townID string) *RoomEmitter {
	return &RoomEmitter{server: s.Sio_server, room: socket.Room(townID)}
}

// Emit pushes an event to the room, fire-and-forget.
func (e *RoomEmitter) Emit(event string, payload interface{}) {
	e.server.To(e.room).Emit(event, payload)
}

// DisconnectSockets closes every connection in the room.
func (e *RoomEmitter) DisconnectSockets() {
	e.server.To(e.room).DisconnectSockets(true)
}
