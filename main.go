package main

import (
	"Stop/config"
	"Stop/middleware"
	"Stop/routes"
	"Stop/services/game"
	"Stop/services/socket_io"
	socketio_types "Stop/services/socket_io/types"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := config.Load()

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	sio := socketio_types.NewSocketServer()
	registry := game.NewRegistry(sio, cfg)

	routes.SetupRoutes(r, registry)

	(*socket_io.MySocketServer)(sio).Start(r, registry)

	// Configure port
	port := os.Getenv("PORT")
	if port == "" {
		if os.Getenv("USE_HTTPS") == "true" {
			port = "443"
		} else {
			port = "8080"
		}
	}

	if os.Getenv("USE_HTTPS") == "true" {
		certFile := os.Getenv("CERT_FILE")
		keyFile := os.Getenv("KEY_FILE")

		if err := r.RunTLS(":"+port, certFile, keyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
