package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[OrderStatus][]OrderStatus{
		OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed: {OrderStatusDelivered, OrderStatusCancelled},
	}

	for _, from := range AllOrderStatuses() {
		for _, to := range AllOrderStatuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				assert.Equal(t, want, from.CanTransitionTo(to))
			})
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range AllOrderStatuses() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, OrderStatus("pending").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}

func TestNewOrder(t *testing.T) {
	p := &Product{ID: "p-1", Name: "Silk Saree", Price: 500, ImageURL: "data:image/jpeg;base64,AA=="}
	d := OrderDraft{
		CustomerName:  "Rina",
		Phone:         "017",
		Address:       "Dhaka",
		SelectedSize:  "XL",
		Quantity:      2,
		ChatSessionID: "chat-1",
	}

	o := NewOrder(d, p)

	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, "p-1", o.ProductID)
	assert.Equal(t, "Silk Saree", o.ProductName)
	assert.Equal(t, 500.0, o.ProductPrice)
	assert.Equal(t, p.ImageURL, o.ProductImage)
	assert.Equal(t, "chat-1", o.ChatSessionID)
	assert.Nil(t, o.DeliveryCharge)
	assert.Equal(t, 1000.0, o.Subtotal())
}

func TestSender_IsValid(t *testing.T) {
	assert.True(t, SenderCustomer.IsValid())
	assert.True(t, SenderAdmin.IsValid())
	assert.False(t, Sender("BOT").IsValid())
}
