package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the order stores implement their interfaces.
var (
	_ driven.OrderStore   = (*orderStore)(nil)
	_ driven.MessageStore = (*messageStore)(nil)
)

type orderStore struct {
	store *Store
}

func (s *orderStore) Create(ctx context.Context, o *domain.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshaling order: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx,
		"INSERT INTO orders (id, status, created_at, body) VALUES (?, ?, ?, ?)",
		o.ID, o.Status.String(), o.CreatedAt.UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := getBody(ctx, s.store.db, driven.CollectionOrders, "id", id, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *orderStore) List(ctx context.Context) ([]domain.Order, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT body FROM orders ORDER BY created_at DESC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return scanBodies[domain.Order](rows)
}

func (s *orderStore) Update(ctx context.Context, o *domain.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshaling order: %w", err)
	}
	res, err := s.store.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, body = ? WHERE id = ?",
		o.Status.String(), string(body), o.ID)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	if err := s.store.deleteByID(ctx, driven.CollectionOrders, id); err != nil {
		return err
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Watch(ctx context.Context) (<-chan []domain.Order, error) {
	return watch.StreamEvery(ctx, s.store.ordersHub, s.store.poll, s.List)
}

type messageStore struct {
	store *Store
}

func (s *messageStore) Append(ctx context.Context, m *domain.Message) error {
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}
	_, err = s.store.db.ExecContext(ctx,
		"INSERT INTO messages (id, correlation_id, created_at, body) VALUES (?, ?, ?, ?)",
		m.ID, m.CorrelationID, m.CreatedAt.UnixNano(), string(body))
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	s.store.messagesHub.Publish()
	return nil
}

// Messages with equal timestamps keep insertion order via rowid.
func (s *messageStore) Thread(ctx context.Context, correlationID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT body FROM messages WHERE correlation_id = ? ORDER BY created_at ASC, rowid ASC",
		correlationID)
	if err != nil {
		return nil, fmt.Errorf("loading thread: %w", err)
	}
	return scanBodies[domain.Message](rows)
}

func (s *messageStore) All(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT body FROM messages ORDER BY created_at ASC, rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return scanBodies[domain.Message](rows)
}

func (s *messageStore) WatchThread(ctx context.Context, correlationID string) (<-chan []domain.Message, error) {
	return watch.StreamEvery(ctx, s.store.messagesHub, s.store.poll,
		func(ctx context.Context) ([]domain.Message, error) {
			return s.Thread(ctx, correlationID)
		})
}
