package service

import (
	"context"
	"fmt"
	"strings"

	"sellerdesk/internal/apperr"
	"sellerdesk/internal/domain"
	"sellerdesk/internal/repository"
)

type OrderItemInput struct {
	ProductID int64
	Quantity  int
	Price     string
}

type CreateOrderInput struct {
	OrderNumber     string
	Platform        domain.Platform
	PlatformOrderID string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderItemInput
	TotalAmount     string
	PaymentMethod   string
	Notes           string
}

// OrderService manages orders captured from the connected platforms.
type OrderService interface {
	Create(ctx context.Context, userID int64, input CreateOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, userID, id int64, status domain.OrderStatus) error
	Get(ctx context.Context, userID, id int64) (*domain.Order, error)
	List(ctx context.Context, userID int64, status *domain.OrderStatus, page repository.Page) ([]domain.Order, error)
}

type orderService struct {
	orders repository.OrderRepository
}

func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) Create(ctx context.Context, userID int64, input CreateOrderInput) (*domain.Order, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	input.CustomerName = strings.TrimSpace(input.CustomerName)

	if input.OrderNumber == "" {
		return nil, apperr.New(apperr.KindBadRequest, "order number is required")
	}
	if !domain.ValidPlatform(input.Platform) {
		return nil, apperr.New(apperr.KindBadRequest, "unknown platform")
	}
	if input.CustomerName == "" {
		return nil, apperr.New(apperr.KindBadRequest, "customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperr.New(apperr.KindBadRequest, "an order needs at least one item")
	}
	if !validDecimal(input.TotalAmount) {
		return nil, apperr.New(apperr.KindBadRequest, "total amount must be a decimal string")
	}

	items := make([]domain.OrderItem, len(input.Items))
	for i, item := range input.Items {
		if item.Quantity < 1 {
			return nil, apperr.New(apperr.KindBadRequest, "item quantity must be at least 1")
		}
		if !validDecimal(item.Price) {
			return nil, apperr.New(apperr.KindBadRequest, "item price must be a decimal string")
		}
		items[i] = domain.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Price,
		}
	}

	order := &domain.Order{
		UserID:          userID,
		OrderNumber:     input.OrderNumber,
		Platform:        input.Platform,
		PlatformOrderID: input.PlatformOrderID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		ShippingAddress: input.ShippingAddress,
		TotalAmount:     input.TotalAmount,
		Status:          domain.OrderStatusPending,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Items:           items,
	}

	activity := &domain.ActivityEntry{
		UserID:      userID,
		Action:      "order_received",
		EntityType:  "order",
		Description: fmt.Sprintf("New order from %s", input.CustomerName),
	}

	if _, err := s.orders.Create(ctx, order, activity); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, id int64, status domain.OrderStatus) error {
	if !domain.ValidOrderStatus(status) {
		return apperr.New(apperr.KindBadRequest, "unknown order status")
	}

	activity := &domain.ActivityEntry{
		UserID:      userID,
		Action:      "order_status_updated",
		EntityType:  "order",
		EntityID:    id,
		Description: fmt.Sprintf("Order status changed to %s", status),
	}
	return s.orders.UpdateStatus(ctx, userID, id, status, activity)
}

func (s *orderService) Get(ctx context.Context, userID, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, userID, id)
}

func (s *orderService) List(ctx context.Context, userID int64, status *domain.OrderStatus, page repository.Page) ([]domain.Order, error) {
	if status != nil && !domain.ValidOrderStatus(*status) {
		return nil, apperr.New(apperr.KindBadRequest, "unknown order status")
	}
	return s.orders.List(ctx, userID, status, page)
}
