package handlers

import (
	"encoding/json"
	"log"

	"Townsquare/models"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// HandleInteractableUpdate applies a client's interactableUpdate event to the
// matching area and lets the town re-broadcast the resulting model. The
// payload is dispatched on its kind discriminant; watch-together playback
// rewrites are rejected unless the sender is the elected host.
func HandleInteractableUpdate(client *socket.Socket, t *town.Town, playerID string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing interactable payload"})
			return
		}

		raw, err := json.Marshal(args[0])
		if err != nil {
			client.Emit("error", gin.H{"error": "Invalid interactable payload"})
			return
		}
		model, err := models.UnmarshalInteractable(raw)
		if err != nil {
			log.Printf("[INTERACTABLE-ERROR] player %s sent a bad model: %v", playerID, err)
			client.Emit("error", gin.H{"error": "Invalid interactable payload"})
			return
		}

		if err := t.UpdateInteractable(playerID, model); err != nil {
			log.Printf("[INTERACTABLE-ERROR] player %s updating %s: %v", playerID, model.InteractableID(), err)
			client.Emit("error", gin.H{"error": err.Error()})
		}
	}
}
