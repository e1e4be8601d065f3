package main

import (
	"Townsquare/api"
	"Townsquare/config"
	_ "Townsquare/config/swagger"
	"Townsquare/middleware"
	"Townsquare/routes"
	socket_io "Townsquare/services/socket_io"
	socketio_types "Townsquare/services/socket_io/types"
	"Townsquare/services/town"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Townsquare API
// @version 1.0
// @description Gin-Gonic server for the Townsquare virtual-town backend
// @BasePath /
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	middleware.SetUpMiddleware(r)

	// The socket server must exist before the store so every new town can be
	// handed a broadcaster for its room.
	sio := socketio_types.NewSocketServer()

	resolver := api.NewYouTube(config.YouTubeAPIKey())
	store := town.NewStore(func(townID string) town.Broadcaster {
		return sio.Room(townID)
	}, resolver, config.JWTSecret())

	routes.SetupRoutes(r, store)

	(*socket_io.MySocketServer)(sio).Start(r, store)

	port := config.Port()
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
