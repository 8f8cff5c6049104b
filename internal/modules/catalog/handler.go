package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backline/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListPublic)
	rg.GET("/rooms/:id", h.Get)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListAll)
	rg.POST("/rooms", h.Create)
	rg.PUT("/rooms/:id", h.Update)
	rg.PATCH("/rooms/:id/visibility", h.SetVisibility)
	rg.DELETE("/rooms/:id", h.Delete)
}

func (h *Handler) ListPublic(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) ListAll(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context(), true)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": rooms})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) Create(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) SetVisibility(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsVisible == nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	room, err := h.service.SetVisibility(c.Request.Context(), id, *req.IsVisible)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRoom(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid room id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room not found")
	case errors.Is(err, ErrRoomInUse):
		response.Error(c, http.StatusConflict, "ROOM_IN_USE", "Room still has future bookings; hide it instead")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Room action failed")
	}
}
