package handlers

import (
	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleChatMessage relays a chat message to every client in the town room.
func HandleChatMessage(client *socket.Socket, t *town.Town, playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing chat payload"})
			return
		}

		var msg models.ChatMessage
		if err := decodeArg(args[0], &msg); err != nil {
			client.Emit("error", gin.H{"error": "Invalid chat payload"})
			return
		}
		t.ChatMessage(msg)
	}
}
