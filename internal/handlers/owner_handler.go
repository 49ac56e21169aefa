package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"puredrop/internal/models"
	"puredrop/internal/services"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OwnerHandler struct {
	authService services.AuthService
	logger      *logrus.Logger
}

func NewOwnerHandler(authService services.AuthService, logger *logrus.Logger) *OwnerHandler {
	return &OwnerHandler{authService: authService, logger: logger}
}

type LoginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register accepts a multipart form with the shop fields, an optional
// shopImage file and stock flags sent either as a JSON "stock" field or as
// stock[waterTins]-style fields.
func (h *OwnerHandler) Register(c *gin.Context) {
	stock, err := parseStock(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid stock format"})
		return
	}

	input := services.RegisterInput{
		ShopName:        c.PostForm("shopName"),
		OwnerName:       c.PostForm("ownerName"),
		Phone:           c.PostForm("phone"),
		Address:         c.PostForm("address"),
		Location:        c.PostForm("location"),
		Stock:           stock,
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	}

	image, err := c.FormFile("shopImage")
	switch {
	case err == nil:
		input.Image = image
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid shop image"})
		return
	}

	owner, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Owner registered successfully",
		"owner":   owner,
	})
}

func parseStock(c *gin.Context) (models.Stock, error) {
	var stock models.Stock
	if raw := c.PostForm("stock"); raw != "" {
		err := json.Unmarshal([]byte(raw), &stock)
		return stock, err
	}

	flags := c.PostFormMap("stock")
	for key, target := range map[string]*bool{
		"waterTins":        &stock.WaterTins,
		"coolingWaterTins": &stock.CoolingWaterTins,
		"waterBottles":     &stock.WaterBottles,
		"waterPackets":     &stock.WaterPackets,
	} {
		value, ok := flags[key]
		if !ok || value == "" {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return stock, err
		}
		*target = parsed
	}
	return stock, nil
}

func (h *OwnerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Phone and password are required"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Phone, req.Password)
	if err != nil {
		switch services.KindOf(err) {
		case services.KindNotFound, services.KindInvalidCredentials:
			// unknown phone and wrong password look the same to the caller
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid phone or password"})
		default:
			respondError(c, h.logger, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Login successful",
		"token":     result.Token,
		"expiresAt": result.ExpiresAt,
		"owner":     result.Owner,
	})
}
