package live

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backline/internal/pkg/response"
)

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterRoutes mounts the event feed. The group must run the auth
// middleware first so user_id is present.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "WEBSOCKET_ERROR", "Upgrade failed")
		return
	}
	h.hub.ServeWS(conn, c.GetInt64("user_id"))
}
