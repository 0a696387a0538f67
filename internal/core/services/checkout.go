package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/core/ports/driving"
	"github.com/sssmarthaat/haat/internal/logger"
)

// Ensure CheckoutService implements the interface.
var _ driving.CheckoutService = (*CheckoutService)(nil)

// CheckoutService writes submitted orders and adjusts stock.
type CheckoutService struct {
	products driven.ProductStore
	orders   driven.OrderStore
	now      func() time.Time
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(products driven.ProductStore, orders driven.OrderStore) *CheckoutService {
	return &CheckoutService{
		products: products,
		orders:   orders,
		now:      time.Now,
	}
}

// PlaceOrder appends a PENDING order with a product snapshot, then
// decrements stock.
func (s *CheckoutService) PlaceOrder(
	ctx context.Context,
	productID string,
	draft domain.OrderDraft,
) (*domain.Order, error) {
	draft.CustomerName = strings.TrimSpace(draft.CustomerName)
	draft.Phone = strings.TrimSpace(draft.Phone)
	draft.Address = strings.TrimSpace(draft.Address)
	if draft.CustomerName == "" || draft.Phone == "" || draft.Address == "" {
		return nil, domain.ErrMissingFields
	}
	if draft.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", domain.ErrInvalidInput)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}

	if draft.SelectedSize == "" {
		draft.SelectedSize = product.DefaultSize()
	} else if len(product.Sizes) > 0 && !product.HasSize(draft.SelectedSize) {
		return nil, fmt.Errorf("%w: size %q is not offered", domain.ErrInvalidInput, draft.SelectedSize)
	}
	if draft.ChatSessionID == "" {
		draft.ChatSessionID = uuid.NewString()
	}

	order := domain.NewOrder(draft, product)
	order.ID = uuid.NewString()
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	if err := s.orders.Create(ctx, &order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	logger.Info("order %s placed for %s x%d", order.ID, product.ID, order.Quantity)

	dec := domain.StockDecrement{Size: order.SelectedSize, Quantity: order.Quantity}
	if _, err := s.products.DecrementStock(ctx, product.ID, dec); err != nil {
		logger.Error("stock update for order %s failed: %v", order.ID, err)
		return &order, fmt.Errorf("%w: %w", domain.ErrStockNotUpdated, err)
	}

	return &order, nil
}
