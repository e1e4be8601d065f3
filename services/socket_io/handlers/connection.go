package handlers

import (
	"log"

	socketio_types "Townsquare/services/socket_io/types"
	"Townsquare/services/town"
)

// Function to handle socket.io client disconnections.
func HandleDisconnecting(playerID string, t *town.Town, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - player: %s", playerID)

		// Leaving the town removes the player from whatever area they occupy
		// and announces the departure to the room.
		t.Leave(playerID)

		// Finally remove connection from map
		sio.RemoveConnection(playerID)
		log.Printf("[DISCONNECT-DONE] player disconnected: %s", playerID)
	}
}
