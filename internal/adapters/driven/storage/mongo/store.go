package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sssmarthaat/haat/internal/adapters/driven/storage/watch"
	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
	"github.com/sssmarthaat/haat/internal/logger"
)

// DefaultPollInterval is used by watchers when change streams are unavailable.
const DefaultPollInterval = 2 * time.Second

// Store holds the database handle and the per-collection change hubs.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	poll   time.Duration

	productsHub *watch.Hub
	ordersHub   *watch.Hub
	messagesHub *watch.Hub
	settingsHub *watch.Hub
}

// NewStore connects to MongoDB and prepares the indexes.
func NewStore(ctx context.Context, cfg domain.MongoSettings) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = domain.DefaultMongoDatabase
	}

	client, err := NewMongoConnection(cfg)
	if err != nil {
		return nil, err
	}

	s := NewStoreFromDatabase(client.Database(cfg.Database))
	s.client = client

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating indexes: %w", err)
	}
	return s, nil
}

// NewStoreFromDatabase wraps an existing database handle. Close does not
// disconnect a client it did not create.
func NewStoreFromDatabase(db *mongo.Database) *Store {
	return &Store{
		db:          db,
		poll:        DefaultPollInterval,
		productsHub: watch.NewHub(),
		ordersHub:   watch.NewHub(),
		messagesHub: watch.NewHub(),
		settingsHub: watch.NewHub(),
	}
}

// SetPollInterval changes the fallback poll interval.
func (s *Store) SetPollInterval(d time.Duration) {
	s.poll = d
}

// Close disconnects the client.
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Stores returns every store interface backed by this database.
func (s *Store) Stores() driven.Stores {
	return driven.Stores{
		Products:   &productStore{store: s, coll: s.db.Collection(driven.CollectionProducts)},
		Categories: &categoryStore{coll: s.db.Collection(driven.CollectionCategories)},
		Banners:    &bannerStore{coll: s.db.Collection(driven.CollectionBanners)},
		Orders:     &orderStore{store: s, coll: s.db.Collection(driven.CollectionOrders)},
		Messages:   &messageStore{store: s, coll: s.db.Collection(driven.CollectionMessages)},
		Settings:   &settingsStore{store: s, coll: s.db.Collection(driven.CollectionSettings), now: time.Now},
		LoginStats: &loginStatStore{coll: s.db.Collection(driven.CollectionLoginStats), now: time.Now},
		Close:      s.Close,
	}
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		driven.CollectionProducts: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		driven.CollectionOrders: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		driven.CollectionMessages: {
			{Keys: bson.D{{Key: "correlationId", Value: 1}, {Key: "createdAt", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexing %s: %w", name, err)
		}
	}
	return nil
}

// stream subscribes query to the collection's changes. A change stream
// drives the hub when the server supports one; otherwise the snapshot is
// polled.
func stream[T any](
	ctx context.Context,
	s *Store,
	coll *mongo.Collection,
	hub *watch.Hub,
	query func(context.Context) (T, error),
) (<-chan T, error) {
	cs, err := coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		logger.Debug("change stream unavailable on %s, polling: %v", coll.Name(), err)
		return watch.StreamEvery(ctx, hub, s.poll, query)
	}

	go func() {
		defer cs.Close(context.Background())
		for cs.Next(ctx) {
			hub.Publish()
		}
		if err := cs.Err(); err != nil && ctx.Err() == nil {
			logger.Warn("change stream on %s ended: %v", coll.Name(), err)
		}
	}()

	return watch.Stream(ctx, hub, query)
}

// notFound maps the driver's missing-document error to domain.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}

// findAll runs a query and decodes every document.
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, sort bson.D) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	result := make([]T, 0)
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", coll.Name(), err)
	}
	return result, nil
}

func replace(ctx context.Context, coll *mongo.Collection, id string, doc any) error {
	_, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("saving to %s: %w", coll.Name(), err)
	}
	return nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
