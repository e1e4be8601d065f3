package socketio_utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function that verifies a socket.io client connection. The handshake auth
// payload must carry the display name the player picked and the ID of the
// town they are joining; session tokens are only issued after this succeeds.
func VerifyUserConnection(client *socket.Socket) (success bool, userName, townID string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		fmt.Println("No auth data provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, "", ""
	}

	userName, exists := authData["userName"].(string)
	if !exists || userName == "" {
		fmt.Println("No userName provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing userName"})
		return false, "", ""
	}

	townID, exists = authData["townID"].(string)
	if !exists || townID == "" {
		fmt.Println("No townID provided in handshake!")
		client.Emit("error", gin.H{"error": "Authentication failed: missing townID"})
		return false, "", ""
	}

	return true, userName, townID
}
