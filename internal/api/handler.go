package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
	"github.com/MBAmbhore007/Order-Tracker/internal/service"
)

type Handler struct {
	orders service.OrderService
}

func NewHandler(orders service.OrderService) *Handler {
	return &Handler{orders: orders}
}

type createOrderRequest struct {
	CustomerName string             `json:"customer_name"`
	OrderDate    domain.Date        `json:"order_date"`
	TotalAmount  float64            `json:"total_amount"`
	Status       domain.OrderStatus `json:"status"`
}

type updateOrderRequest struct {
	TotalAmount float64            `json:"total_amount"`
	Status      domain.OrderStatus `json:"status"`
}

type bulkDeleteRequest struct {
	// Pointer so an absent or non-array "ids" is distinguishable from [].
	IDs *[]int64 `json:"ids"`
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order data"})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), service.CreateOrderInput{
		CustomerName: req.CustomerName,
		OrderDate:    req.OrderDate,
		TotalAmount:  req.TotalAmount,
		Status:       req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *Handler) updateOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update data"})
		return
	}

	order, err := h.orders.Update(c.Request.Context(), id, service.UpdateOrderInput{
		TotalAmount: req.TotalAmount,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	// A zero-row update responds 200 with a null body, mirroring the no-op
	// semantics of the store.
	c.JSON(http.StatusOK, order)
}

func (h *Handler) bulkDeleteOrders(c *gin.Context) {
	var req bulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IDs == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids array required"})
		return
	}

	if err := h.orders.BulkDelete(c.Request.Context(), *req.IDs); err != nil {
		serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	serverError(c, err)
}

func serverError(c *gin.Context, err error) {
	log.Printf("storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
