package handlers

import (
	"context"
	"puredrop/internal/auth"
	"puredrop/internal/middleware"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Router struct {
	Owners         *OwnerHandler
	Shops          *ShopHandler
	Orders         *OrderHandler
	Health         *HealthHandler
	Tokens         *auth.TokenManager
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *logrus.Logger
}

func (r *Router) Engine() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.Logger))
	if len(r.AllowedOrigins) > 0 {
		router.Use(middleware.CORS(r.AllowedOrigins))
	}
	if r.RequestTimeout > 0 {
		router.Use(requestTimeout(r.RequestTimeout))
	}

	if r.Health != nil {
		router.GET("/healthz", r.Health.Health)
	}

	requireAuth := middleware.AuthRequired(r.Tokens, r.Logger)

	api := router.Group("/api")
	{
		owner := api.Group("/owner")
		owner.POST("/register", r.Owners.Register)
		owner.POST("/login", r.Owners.Login)

		shops := api.Group("/shops")
		shops.GET("/:phone", r.Shops.GetShop)
		shops.PUT("/:phone", requireAuth, r.Shops.UpdateShop)

		orders := api.Group("/orders", requireAuth)
		orders.GET("/my-shop-orders", r.Orders.MyShopOrders)
		orders.PUT("/update-status/:orderId", r.Orders.UpdateStatus)
		orders.GET("/stats", r.Orders.Stats)
	}

	return router
}

// requestTimeout bounds the store work done on behalf of a single request.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
