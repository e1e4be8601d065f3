package handlers

import (
	"log"

	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandlePlayerMovement routes a client's playerMovement event into the town:
// the town updates the location, reconciles area occupancy and broadcasts the
// move to the room.
func HandlePlayerMovement(client *socket.Socket, t *town.Town, playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing location payload"})
			return
		}

		var loc models.PlayerLocation
		if err := decodeArg(args[0], &loc); err != nil {
			log.Printf("[MOVE-ERROR] player %s sent a bad location: %v", playerID, err)
			client.Emit("error", gin.H{"error": "Invalid location payload"})
			return
		}

		if err := t.UpdatePlayerLocation(playerID, loc); err != nil {
			log.Printf("[MOVE-ERROR] player %s: %v", playerID, err)
			client.Emit("error", gin.H{"error": err.Error()})
		}
	}
}
