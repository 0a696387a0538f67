package services

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure OrderAdminService implements the interface.
var _ driving.OrderAdminService = (*OrderAdminService)(nil)

// OrderAdminService moves orders through their lifecycle.
// There is no optimistic locking; concurrent admins overwrite each other.
type OrderAdminService struct {
	orders driven.OrderStore
	now    func() time.Time
}

// NewOrderAdminService creates a new order admin service.
func NewOrderAdminService(orders driven.OrderStore) *OrderAdminService {
	return &OrderAdminService{orders: orders, now: time.Now}
}

// List returns all orders, newest first.
func (s *OrderAdminService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// Get retrieves an order.
func (s *OrderAdminService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// Watch streams order list snapshots until ctx is cancelled.
func (s *OrderAdminService) Watch(ctx context.Context) (<-chan []domain.Order, error) {
	return s.orders.Watch(ctx)
}

// ParseDeliveryCharge parses an admin-entered delivery charge.
func ParseDeliveryCharge(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: delivery charge is required", domain.ErrInvalidInput)
	}
	charge, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(charge) || math.IsInf(charge, 0) {
		return 0, fmt.Errorf("%w: delivery charge %q is not a number", domain.ErrInvalidInput, input)
	}
	if charge < 0 {
		return 0, fmt.Errorf("%w: delivery charge cannot be negative", domain.ErrInvalidInput)
	}
	return charge, nil
}

// Confirm moves a PENDING order to CONFIRMED with a delivery charge.
func (s *OrderAdminService) Confirm(ctx context.Context, id, deliveryCharge string) (*domain.Order, error) {
	charge, err := ParseDeliveryCharge(deliveryCharge)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, domain.OrderStatusConfirmed, func(o *domain.Order) {
		o.DeliveryCharge = &charge
	})
}

// Cancel moves a PENDING or CONFIRMED order to CANCELLED.
func (s *OrderAdminService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusCancelled, nil)
}

// MarkDelivered moves a CONFIRMED order to DELIVERED.
func (s *OrderAdminService) MarkDelivered(ctx context.Context, id string) (*domain.Order, error) {
	return s.transition(ctx, id, domain.OrderStatusDelivered, nil)
}

// Delete removes an order permanently.
func (s *OrderAdminService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("order %s deleted", id)
	return nil
}

func (s *OrderAdminService) transition(
	ctx context.Context,
	id string,
	next domain.OrderStatus,
	mutate func(*domain.Order),
) (*domain.Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, o.Status, next)
	}

	o.Status = next
	if mutate != nil {
		mutate(o)
	}
	o.UpdatedAt = s.now()

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	logger.Info("order %s -> %s", id, next)
	return o, nil
}
