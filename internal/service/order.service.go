package service

import (
	"context"
	"strings"

	"github.com/MBAmbhore007/Order-Tracker/internal/domain"
	"github.com/MBAmbhore007/Order-Tracker/internal/repo"
)

type CreateOrderInput struct {
	CustomerName string
	OrderDate    domain.Date
	TotalAmount  float64
	Status       domain.OrderStatus
}

type UpdateOrderInput struct {
	TotalAmount float64
	Status      domain.OrderStatus
}

// OrderService validates and executes order mutations against the store.
// Validation runs structural checks (presence) before semantic checks
// (range, enum membership) and stops at the first violation.
type OrderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	// Update persists total_amount and status only. It performs no existence
	// check: an unknown id yields (nil, nil).
	Update(ctx context.Context, id int64, in UpdateOrderInput) (*domain.Order, error)
	BulkDelete(ctx context.Context, ids []int64) error
}

type orderService struct {
	orders repo.OrderRepo
}

func NewOrderService(orders repo.OrderRepo) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return nil, invalid("customer_name is required")
	}
	if in.OrderDate.IsZero() {
		return nil, invalid("order_date is required")
	}
	if in.Status == "" {
		return nil, invalid("status is required")
	}
	if in.TotalAmount < 0 {
		return nil, invalid("total_amount must be non-negative")
	}
	if !in.Status.Valid() {
		return nil, invalid("invalid status")
	}

	order := &domain.Order{
		CustomerName: name,
		OrderDate:    in.OrderDate,
		TotalAmount:  in.TotalAmount,
		Status:       in.Status,
	}
	return s.orders.Create(ctx, order)
}

func (s *orderService) Update(ctx context.Context, id int64, in UpdateOrderInput) (*domain.Order, error) {
	if in.Status == "" {
		return nil, invalid("status is required")
	}
	if in.TotalAmount < 0 {
		return nil, invalid("total_amount must be non-negative")
	}
	if !in.Status.Valid() {
		return nil, invalid("invalid status")
	}

	return s.orders.Update(ctx, id, in.TotalAmount, in.Status)
}

func (s *orderService) BulkDelete(ctx context.Context, ids []int64) error {
	return s.orders.DeleteByIDs(ctx, ids)
}
