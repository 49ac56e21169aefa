package handlers

import (
	"net/http"
	"puredrop/internal/middleware"
	"puredrop/internal/models"
	"puredrop/internal/services"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	orderService services.OrderService
	logger       *logrus.Logger
}

func NewOrderHandler(orderService services.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

type UpdateStatusRequest struct {
	DeliveryStatus models.DeliveryStatus `json:"deliveryStatus" binding:"required"`
}

// MyShopOrders lists the caller's orders, newest first. The optional status
// (or filter) query parameter narrows the list to one delivery status.
func (h *OrderHandler) MyShopOrders(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	status := c.Query("status")
	if status == "" {
		status = c.Query("filter")
	}

	orders, err := h.orderService.ListMyOrders(c.Request.Context(), identity, models.OrderFilter{
		Status: models.DeliveryStatus(status),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "deliveryStatus is required"})
		return
	}

	order, err := h.orderService.UpdateDeliveryStatus(c.Request.Context(), identity, c.Param("orderId"), req.DeliveryStatus)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Delivery status updated",
		"order":   order,
	})
}

func (h *OrderHandler) Stats(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	summary, err := h.orderService.Stats(c.Request.Context(), identity, time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
