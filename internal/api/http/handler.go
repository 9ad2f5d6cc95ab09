package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bone-rush/internal/room"
)

// ListRoomsHandler returns the active rooms with code, player count and
// phase.
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rm.ListRooms()})
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
