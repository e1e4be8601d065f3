package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Townsquare/services/socket_io/handlers"
	socketio_types "Townsquare/services/socket_io/types"
	socketio_utils "Townsquare/services/socket_io/utils"
	"Townsquare/services/town"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, store *town.Store) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	// Poster images travel base64-encoded over the socket, so allow big frames.
	c.SetMaxHttpBufferSize(10000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// The handshake must name the player and the town they are joining
		success, userName, townID := socketio_utils.VerifyUserConnection(client)
		if !success {
			client.Disconnect(true)
			return
		}

		t, err := store.Get(townID)
		if err != nil {
			client.Emit("error", gin.H{"error": "Town does not exist"})
			client.Disconnect(true)
			return
		}

		player, joinResponse, err := t.Join(userName)
		if err != nil {
			client.Emit("error", gin.H{"error": err.Error()})
			client.Disconnect(true)
			return
		}

		// Join the socket to the town room so broadcasts reach this client
		client.Join(socket.Room(townID))

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(player.ID, client)

		fmt.Println("An individual just connected!: ", userName)

		// The one full-state snapshot this client will ever receive
		client.Emit("initialize", joinResponse)

		// Avatar movement, including area enter/leave transitions
		client.On("playerMovement", handlers.HandlePlayerMovement(client, t, player.ID))

		// Full-model area state rewrites
		client.On("interactableUpdate", handlers.HandleInteractableUpdate(client, t, player.ID))

		// Town-wide chat relay
		client.On("chatMessage", handlers.HandleChatMessage(client, t, player.ID))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(player.ID, t, (*socketio_types.SocketServer)(sio)))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
