package domain

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

// Order statuses.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// IsValid returns true if the status is recognised.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

// CanTransitionTo reports whether an admin may move an order from s to next.
//
//	PENDING   -> CONFIRMED | CANCELLED
//	CONFIRMED -> DELIVERED | CANCELLED
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// String returns the string representation.
func (s OrderStatus) String() string {
	return string(s)
}

// AllOrderStatuses returns every order status in lifecycle order.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusCancelled,
		OrderStatusDelivered,
	}
}

// Order is a shopper's purchase request with a snapshot of the product.
type Order struct {
	ID           string `json:"id" bson:"_id"`
	CustomerName string `json:"customerName" bson:"customerName"`
	Phone        string `json:"phone" bson:"phone"`
	Address      string `json:"address" bson:"address"`
	SelectedSize string `json:"selectedSize" bson:"selectedSize"`
	Quantity     int    `json:"quantity" bson:"quantity"`

	// Product snapshot taken at submission time.
	ProductID    string  `json:"productId" bson:"productId"`
	ProductName  string  `json:"productName" bson:"productName"`
	ProductPrice float64 `json:"productPrice" bson:"productPrice"`
	ProductImage string  `json:"productImage" bson:"productImage"`

	Status OrderStatus `json:"status" bson:"status"`

	// DeliveryCharge is set when the order is confirmed.
	DeliveryCharge *float64 `json:"deliveryCharge,omitempty" bson:"deliveryCharge,omitempty"`

	// ChatSessionID correlates the order with the shopper's chat thread.
	ChatSessionID string `json:"chatSessionId" bson:"chatSessionId"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Subtotal returns price times quantity.
func (o *Order) Subtotal() float64 {
	return o.ProductPrice * float64(o.Quantity)
}

// OrderDraft is a validated order form ready for submission.
type OrderDraft struct {
	CustomerName  string
	Phone         string
	Address       string
	SelectedSize  string
	Quantity      int
	ChatSessionID string
}

// NewOrder builds a PENDING order from a draft and a product snapshot.
// The caller assigns ID and timestamps.
func NewOrder(d OrderDraft, p *Product) Order {
	return Order{
		CustomerName:  d.CustomerName,
		Phone:         d.Phone,
		Address:       d.Address,
		SelectedSize:  d.SelectedSize,
		Quantity:      d.Quantity,
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductPrice:  p.Price,
		ProductImage:  p.ImageURL,
		Status:        OrderStatusPending,
		ChatSessionID: d.ChatSessionID,
	}
}
