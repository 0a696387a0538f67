package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

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
	coll  *mongo.Collection
}

func (s *orderStore) Create(ctx context.Context, o *domain.Order) error {
	if _, err := s.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

func (s *orderStore) List(ctx context.Context) ([]domain.Order, error) {
	return findAll[domain.Order](ctx, s.coll, bson.M{}, newestFirst)
}

func (s *orderStore) Update(ctx context.Context, o *domain.Order) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Delete(ctx context.Context, id string) error {
	if err := deleteOne(ctx, s.coll, id); err != nil {
		return err
	}
	s.store.ordersHub.Publish()
	return nil
}

func (s *orderStore) Watch(ctx context.Context) (<-chan []domain.Order, error) {
	return stream(ctx, s.store, s.coll, s.store.ordersHub, s.List)
}

type messageStore struct {
	store *Store
	coll  *mongo.Collection
}

var oldestFirst = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func (s *messageStore) Append(ctx context.Context, m *domain.Message) error {
	if _, err := s.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	s.store.messagesHub.Publish()
	return nil
}

func (s *messageStore) Thread(ctx context.Context, correlationID string) ([]domain.Message, error) {
	return findAll[domain.Message](ctx, s.coll, bson.M{"correlationId": correlationID}, oldestFirst)
}

func (s *messageStore) All(ctx context.Context) ([]domain.Message, error) {
	return findAll[domain.Message](ctx, s.coll, bson.M{}, oldestFirst)
}

func (s *messageStore) WatchThread(ctx context.Context, correlationID string) (<-chan []domain.Message, error) {
	return stream(ctx, s.store, s.coll, s.store.messagesHub,
		func(ctx context.Context) ([]domain.Message, error) {
			return s.Thread(ctx, correlationID)
		})
}
