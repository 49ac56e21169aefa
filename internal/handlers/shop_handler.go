package handlers

import (
	"net/http"
	"puredrop/internal/middleware"
	"puredrop/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ShopHandler struct {
	shopService services.ShopService
	logger      *logrus.Logger
}

func NewShopHandler(shopService services.ShopService, logger *logrus.Logger) *ShopHandler {
	return &ShopHandler{shopService: shopService, logger: logger}
}

func (h *ShopHandler) GetShop(c *gin.Context) {
	owner, err := h.shopService.GetByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}

func (h *ShopHandler) UpdateShop(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization token missing"})
		return
	}

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request format"})
		return
	}

	owner, err := h.shopService.UpdateProfile(c.Request.Context(), identity, c.Param("phone"), update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}
