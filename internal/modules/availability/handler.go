package availability

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability/slots", h.AvailableSlots)
	rg.GET("/availability/rooms", h.AvailableRooms)
	rg.GET("/availability/conflicts", h.Conflicts)
}

// The three engine endpoints keep the response keys the front end
// already consumes: availableSlots, rooms, conflicts/hasConflicts.

func (h *Handler) AvailableSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), c.Query("date"), c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"availableSlots": slots,
	})
}

func (h *Handler) AvailableRooms(c *gin.Context) {
	duration, ok := parseDuration(c)
	if !ok {
		return
	}
	rooms, err := h.service.AvailableRooms(c.Request.Context(), c.Query("date"), c.Query("time"), duration, c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"rooms":   rooms,
	})
}

func (h *Handler) Conflicts(c *gin.Context) {
	duration, ok := parseDuration(c)
	if !ok {
		return
	}
	conflicts, err := h.service.Conflicts(c.Request.Context(), c.Query("date"), c.Query("time"), duration, c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"conflicts":    conflicts,
		"hasConflicts": len(conflicts) > 0,
	})
}

func parseDuration(c *gin.Context) (float64, bool) {
	raw := c.Query("duration")
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid duration")
		return 0, false
	}
	return d, true
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrInvalidTime),
		errors.Is(err, schedule.ErrInvalidDuration),
		errors.Is(err, schedule.ErrOutsideHours):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrStorage):
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load schedule data")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability query failed")
	}
}
