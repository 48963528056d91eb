package api

import (
	"net/http"

	"gemilang-store/internal/service"

	"github.com/gin-gonic/gin"
)

// listOrders serves every order with client name and company, newest first
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// updateOrderStatus accepts or rejects a pending order; the response carries
// the updated order so the console reflects it without a re-fetch
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.admin.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// listSpareParts serves the inventory view's catalog
func (h *Handler) listSpareParts(c *gin.Context) {
	parts, err := h.admin.ListParts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

// addSparePart inserts a new catalog entry
func (h *Handler) addSparePart(c *gin.Context) {
	var req service.AddPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	part, err := h.admin.AddPart(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, part)
}

type updateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// updateSparePartStock changes the stock count on a part
func (h *Handler) updateSparePartStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.admin.UpdateStock(c.Request.Context(), c.Param("id"), *req.Stock); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stock": *req.Stock})
}
