package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"bone-rush/internal/api/ws"
	"bone-rush/internal/config"
	"bone-rush/internal/room"
)

func SetupRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config) *gin.Engine {
	r := gin.Default()

	// WebSocket endpoint for the game client
	r.GET("/ws", hub.HandleWS)

	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/healthz", HealthHandler())

	// Serve the browser client when a static dir is configured
	if cfg.StaticDir != "" {
		r.NoRoute(gin.WrapH(nethttp.FileServer(nethttp.Dir(cfg.StaticDir))))
	}

	return r
}
