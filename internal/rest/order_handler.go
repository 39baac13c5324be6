package rest

import (
	"net/http"
	"time"

	"mechoci-be/internal/order"
	"mechoci-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type createOrderRequest struct {
	Items            []orderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryLocation order.Location     `json:"deliveryLocation" binding:"required"`
	DeliveryTime     time.Time          `json:"deliveryTime" binding:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	input := order.CreateInput{
		Items:            make([]order.ItemInput, 0, len(req.Items)),
		DeliveryLocation: req.DeliveryLocation,
		DeliveryTime:     req.DeliveryTime,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, order.ItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	o, err := h.orders.Create(c.Request.Context(), userID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, o)
}

// MyOrders lists the caller's own orders, newest first.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	orders, err := h.orders.List(c.Request.Context(), userID, false)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

// ListAll is the admin view over every order.
func (h *OrderHandler) ListAll(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	orders, err := h.orders.List(c.Request.Context(), userID, utils.IsAdminFromContext(c.Request.Context()))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if orders == nil {
		orders = []*order.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := utils.GetUserIDFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
		return
	}

	o, err := h.orders.Get(c.Request.Context(), c.Param("id"), userID, utils.IsAdminFromContext(c.Request.Context()))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	o, err := h.orders.UpdateStatus(
		c.Request.Context(),
		c.Param("id"),
		order.Status(req.Status),
		utils.IsAdminFromContext(c.Request.Context()),
	)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, o)
}
