package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the order stores implement their interfaces.
var (
	_ driven.OrderStore   = (*OrderStore)(nil)
	_ driven.MessageStore = (*MessageStore)(nil)
)

// OrderStore is an in-memory implementation of driven.OrderStore.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	hub    *watch.Hub
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]domain.Order),
		hub:    watch.NewHub(),
	}
}

func cloneOrder(o domain.Order) domain.Order {
	if o.DeliveryCharge != nil {
		c := *o.DeliveryCharge
		o.DeliveryCharge = &c
	}
	return o
}

// Create appends a new order.
func (s *OrderStore) Create(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	s.orders[o.ID] = cloneOrder(*o)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// Get retrieves an order by ID.
func (s *OrderStore) Get(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o = cloneOrder(o)
	return &o, nil
}

// List returns all orders, newest first.
func (s *OrderStore) List(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		result = append(result, cloneOrder(o))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update replaces an order.
func (s *OrderStore) Update(_ context.Context, o *domain.Order) error {
	s.mu.Lock()
	if _, ok := s.orders[o.ID]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	s.orders[o.ID] = cloneOrder(*o)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// Delete removes an order.
func (s *OrderStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.orders[id]; !ok {
		s.mu.Unlock()
		return domain.ErrNotFound
	}
	delete(s.orders, id)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// Watch subscribes to the order list.
func (s *OrderStore) Watch(ctx context.Context) (<-chan []domain.Order, error) {
	return watch.Stream(ctx, s.hub, s.List)
}

// MessageStore is an in-memory implementation of driven.MessageStore.
type MessageStore struct {
	mu       sync.RWMutex
	messages []domain.Message
	hub      *watch.Hub
}

// NewMessageStore creates a new in-memory message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{hub: watch.NewHub()}
}

// Append adds a message.
func (s *MessageStore) Append(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	s.messages = append(s.messages, *m)
	s.mu.Unlock()
	s.hub.Publish()
	return nil
}

// Thread returns messages for a correlation id, oldest first.
func (s *MessageStore) Thread(_ context.Context, correlationID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Message, 0)
	for _, m := range s.messages {
		if m.CorrelationID == correlationID {
			result = append(result, m)
		}
	}
	sortMessages(result)
	return result, nil
}

// All returns every message, oldest first.
func (s *MessageStore) All(_ context.Context) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := append([]domain.Message(nil), s.messages...)
	sortMessages(result)
	return result, nil
}

// WatchThread subscribes to a single thread.
func (s *MessageStore) WatchThread(ctx context.Context, correlationID string) (<-chan []domain.Message, error) {
	return watch.Stream(ctx, s.hub, func(ctx context.Context) ([]domain.Message, error) {
		return s.Thread(ctx, correlationID)
	})
}

func sortMessages(ms []domain.Message) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].CreatedAt.Before(ms[j].CreatedAt) })
}
