package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backline/internal/pkg/response"
	"backline/internal/schedule"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes the submission endpoint.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Submit)
}

// RegisterAdminRoutes exposes the back-office actions.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.List)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/confirm", h.Confirm)
	rg.POST("/bookings/:id/reject", h.Reject)
	rg.DELETE("/bookings/:id", h.Delete)
	rg.POST("/blocks", h.CreateBlock)
}

func (h *Handler) Submit(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, conflicts, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"success":      false,
				"conflicts":    conflicts,
				"hasConflicts": true,
				"error": gin.H{
					"code":    "BOOKING_CONFLICT",
					"message": "Requested time is not available",
				},
			})
			return
		}
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.List(c.Request.Context(), c.Query("date"), c.Query("status"), limit, offset)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": list})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id, req.RoomID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) CreateBlock(c *gin.Context) {
	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.CreateBlock(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, schedule.ErrInvalidDuration),
		errors.Is(err, schedule.ErrOutsideHours),
		errors.Is(err, ErrRoomIncompatible):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrRoomNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrRoomOccupied), errors.Is(err, ErrOverbooking):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Room is not available for the selected time")
	case errors.Is(err, ErrInvalidStatusTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Booking status does not allow this action")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Booking action failed")
	}
}
