package socket_io

import (
	"Stop/services/game"
	"Stop/services/socket_io/handlers"

	socketio_types "Stop/services/socket_io/types"
	socketio_utils "Stop/services/socket_io/utils"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, registry *game.Registry) {
	log.DEBUG = os.Getenv("PROD") != "true"
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Identity comes from the handshake JWT; the connection is
		// dropped if it does not verify.
		success, playerID, displayName := socketio_utils.VerifyUserConnection(client)
		if !success {
			return
		}

		base := (*socketio_types.SocketServer)(sio)
		base.AddConnection(playerID, client)

		fmt.Println("An individual just connected!: ", playerID)

		base.ToAll("playersOnline", gin.H{"count": base.ConnectionCount()})
		client.Emit("updateRoomList", gin.H{"rooms": registry.ListRooms()})

		client.On("createRoom", handlers.HandleCreateRoom(registry, client, playerID, displayName))

		client.On("joinRoom", handlers.HandleJoinRoom(registry, client, playerID))

		client.On("playerReady", handlers.HandlePlayerReady(registry, client, playerID, displayName))

		client.On("toggleReady", handlers.HandleToggleReady(registry, client, playerID))

		client.On("startGame", handlers.HandleStartGame(registry, client, playerID))

		client.On("playerPressedStop", handlers.HandlePressedStop(registry, client, playerID))

		client.On("submitAnswers", handlers.HandleSubmitAnswers(registry, client, playerID))

		client.On("ownerInvalidateAnswer", handlers.HandleInvalidateAnswer(registry, client, playerID))

		client.On("requestNewGame", handlers.HandleRequestNewGame(registry, client, playerID))

		client.On("ownerUpdateRoomSettings", handlers.HandleUpdateRoomSettings(registry, client, playerID))

		client.On("stopMessage", handlers.HandleStopMessage(registry, client, playerID))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(playerID, base, registry))
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
