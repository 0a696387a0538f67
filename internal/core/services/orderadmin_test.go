package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/memory"
	"github.com/sssmarthaat/haat/internal/core/domain"
)

func newTestOrderAdmin(t *testing.T, status domain.OrderStatus) (*OrderAdminService, *memory.OrderStore) {
	t.Helper()
	orders := memory.NewOrderStore()
	require.NoError(t, orders.Create(context.Background(), &domain.Order{
		ID:        "o1",
		Status:    status,
		Quantity:  1,
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}))
	svc := NewOrderAdminService(orders)
	svc.now = fixedClock(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC))
	return svc, orders
}

func TestParseDeliveryCharge(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"60", 60, false},
		{" 120.5 ", 120.5, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-10", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDeliveryCharge(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderAdminService_Confirm(t *testing.T) {
	svc, orders := newTestOrderAdmin(t, domain.OrderStatusPending)

	o, err := svc.Confirm(context.Background(), "o1", "60")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, o.Status)
	require.NotNil(t, o.DeliveryCharge)
	assert.Equal(t, 60.0, *o.DeliveryCharge)

	stored, err := orders.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, stored.Status)
	require.NotNil(t, stored.DeliveryCharge)
	assert.Equal(t, 60.0, *stored.DeliveryCharge)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
}

func TestOrderAdminService_Confirm_BadCharge(t *testing.T) {
	svc, orders := newTestOrderAdmin(t, domain.OrderStatusPending)

	_, err := svc.Confirm(context.Background(), "o1", "sixty")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stored, err := orders.Get(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.DeliveryCharge)
}

func TestOrderAdminService_Transitions(t *testing.T) {
	type action func(svc *OrderAdminService) (*domain.Order, error)
	confirm := func(svc *OrderAdminService) (*domain.Order, error) {
		return svc.Confirm(context.Background(), "o1", "50")
	}
	cancel := func(svc *OrderAdminService) (*domain.Order, error) {
		return svc.Cancel(context.Background(), "o1")
	}
	deliver := func(svc *OrderAdminService) (*domain.Order, error) {
		return svc.MarkDelivered(context.Background(), "o1")
	}

	tests := []struct {
		name string
		from domain.OrderStatus
		act  action
		want domain.OrderStatus
		ok   bool
	}{
		{"pending confirm", domain.OrderStatusPending, confirm, domain.OrderStatusConfirmed, true},
		{"pending cancel", domain.OrderStatusPending, cancel, domain.OrderStatusCancelled, true},
		{"pending deliver", domain.OrderStatusPending, deliver, "", false},
		{"confirmed deliver", domain.OrderStatusConfirmed, deliver, domain.OrderStatusDelivered, true},
		{"confirmed cancel", domain.OrderStatusConfirmed, cancel, domain.OrderStatusCancelled, true},
		{"confirmed confirm", domain.OrderStatusConfirmed, confirm, "", false},
		{"cancelled confirm", domain.OrderStatusCancelled, confirm, "", false},
		{"cancelled deliver", domain.OrderStatusCancelled, deliver, "", false},
		{"delivered cancel", domain.OrderStatusDelivered, cancel, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders := newTestOrderAdmin(t, tt.from)
			o, err := tt.act(svc)
			if !tt.ok {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				stored, getErr := orders.Get(context.Background(), "o1")
				require.NoError(t, getErr)
				assert.Equal(t, tt.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.Status)
		})
	}
}

func TestOrderAdminService_MissingOrder(t *testing.T) {
	svc := NewOrderAdminService(memory.NewOrderStore())

	_, err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "missing"), domain.ErrNotFound)
}

func TestOrderAdminService_Delete(t *testing.T) {
	svc, _ := newTestOrderAdmin(t, domain.OrderStatusDelivered)

	require.NoError(t, svc.Delete(context.Background(), "o1"))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
