package store

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
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/:id", h.GetProduct)
	rg.GET("/rental-items", h.ListRentalItems)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListAllProducts)
	rg.POST("/products", h.CreateProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)

	rg.POST("/rental-items", h.CreateRentalItem)
	rg.GET("/rentals", h.ListOpenRentals)
	rg.GET("/rentals/overdue", h.ListOverdueRentals)
	rg.POST("/rentals", h.OpenRental)
	rg.POST("/rentals/:id/return", h.CloseRental)
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context(), false)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) ListAllProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context(), true)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"products": products})
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	product, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	product, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": product})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *Handler) ListRentalItems(c *gin.Context) {
	availableOnly := c.Query("available") == "true"
	items, err := h.service.ListRentalItems(c.Request.Context(), availableOnly)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

func (h *Handler) CreateRentalItem(c *gin.Context) {
	var req RentalItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	item, err := h.service.CreateRentalItem(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) OpenRental(c *gin.Context) {
	var req OpenRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	agreement, err := h.service.OpenRental(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"rental": agreement})
}

func (h *Handler) CloseRental(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	agreement, err := h.service.CloseRental(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rental": agreement})
}

func (h *Handler) ListOpenRentals(c *gin.Context) {
	rentals, err := h.service.ListOpenRentals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": rentals})
}

func (h *Handler) ListOverdueRentals(c *gin.Context) {
	rentals, err := h.service.ListOverdueRentals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rentals": rentals})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrItemUnavailable):
		response.Error(c, http.StatusConflict, "ITEM_UNAVAILABLE", "Rental item is already out")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Store action failed")
	}
}
