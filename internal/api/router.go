package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MBAmbhore007/Order-Tracker/internal/database"
	"github.com/MBAmbhore007/Order-Tracker/internal/service"
)

// NewRouter assembles the REST surface consumed by the grid client.
func NewRouter(orders service.OrderService, health database.Service) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(requestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, health.Health())
	})

	h := NewHandler(orders)
	group := r.Group("/api/orders")
	{
		group.GET("", h.listOrders)
		group.POST("", h.createOrder)
		group.PUT("/:id", h.updateOrder)
		group.DELETE("", h.bulkDeleteOrders)
	}

	return r
}

// requestID tags every response so client reports can be matched to server logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-Id", id)
		c.Next()
	}
}
