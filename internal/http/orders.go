package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sellerdesk/internal/domain"
	"sellerdesk/internal/service"
)

type OrderItemResponse struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"priceAtPurchase"`
}

type OrderResponse struct {
	ID              int64               `json:"id"`
	OrderNumber     string              `json:"orderNumber"`
	Platform        domain.Platform     `json:"platform"`
	PlatformOrderID string              `json:"platformOrderId"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerEmail   string              `json:"customerEmail"`
	ShippingAddress string              `json:"shippingAddress"`
	TotalAmount     string              `json:"totalAmount"`
	Status          domain.OrderStatus  `json:"status"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes"`
	CreatedAt       string              `json:"createdAt"`
	UpdatedAt       string              `json:"updatedAt"`
	Items           []OrderItemResponse `json:"items"`
}

func orderToResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		Platform:        o.Platform,
		PlatformOrderID: o.PlatformOrderID,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerEmail:   o.CustomerEmail,
		ShippingAddress: o.ShippingAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
		Items:           items,
	}
}

func (h *Handler) listOrders(c *gin.Context) {
	var status *domain.OrderStatus
	if s := c.Query("status"); s != "" {
		v := domain.OrderStatus(s)
		status = &v
	}

	orders, err := h.orders.List(c.Request.Context(), userFrom(c).ID, status, pageFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := make([]OrderResponse, len(orders))
	for i := range orders {
		resp[i] = orderToResponse(orders[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.orders.Get(c.Request.Context(), userFrom(c).ID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderToResponse(*order))
}

type orderItemRequest struct {
	ProductID int64  `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Price     string `json:"price" binding:"required"`
}

type createOrderRequest struct {
	OrderNumber     string             `json:"orderNumber" binding:"required"`
	Platform        domain.Platform    `json:"platform" binding:"required"`
	PlatformOrderID string             `json:"platformOrderId"`
	CustomerName    string             `json:"customerName" binding:"required"`
	CustomerPhone   string             `json:"customerPhone"`
	CustomerEmail   string             `json:"customerEmail"`
	ShippingAddress string             `json:"shippingAddress"`
	Items           []orderItemRequest `json:"items" binding:"required,min=1"`
	TotalAmount     string             `json:"totalAmount" binding:"required"`
	PaymentMethod   string             `json:"paymentMethod"`
	Notes           string             `json:"notes"`
}

func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	order, err := h.orders.Create(c.Request.Context(), userFrom(c).ID, service.CreateOrderInput{
		OrderNumber:     req.OrderNumber,
		Platform:        req.Platform,
		PlatformOrderID: req.PlatformOrderID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderToResponse(*order))
}

type updateOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, badRequest(err))
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), userFrom(c).ID, id, req.Status); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
