package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Ensure the catalog stores implement their interfaces.
var (
	_ driven.ProductStore  = (*productStore)(nil)
	_ driven.CategoryStore = (*categoryStore)(nil)
	_ driven.BannerStore   = (*bannerStore)(nil)
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}

type productStore struct {
	store *Store
	coll  *mongo.Collection
}

func (s *productStore) Save(ctx context.Context, p *domain.Product) error {
	if err := replace(ctx, s.coll, p.ID, p); err != nil {
		return err
	}
	s.store.productsHub.Publish()
	return nil
}

func (s *productStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func productFilter(f domain.ProductFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.SliderOnly {
		filter["showInSlider"] = true
	}
	if f.FlashOfferOnly {
		filter["showInFlashOffer"] = true
	}
	return filter
}

func (s *productStore) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return findAll[domain.Product](ctx, s.coll, productFilter(filter), newestFirst)
}

func (s *productStore) Delete(ctx context.Context, id string) error {
	if err := deleteOne(ctx, s.coll, id); err != nil {
		return err
	}
	s.store.productsHub.Publish()
	return nil
}

// floorSub builds {$max: [0, {$subtract: [field, qty]}]}.
func floorSub(field string, qty int) bson.M {
	return bson.M{"$max": bson.A{0, bson.M{"$subtract": bson.A{"$" + field, qty}}}}
}

// decrementPipeline is a single-document update pipeline, so the read of the
// current counters and the write happen atomically on the server.
func decrementPipeline(dec domain.StockDecrement) mongo.Pipeline {
	set := bson.D{{Key: "stockQuantity", Value: floorSub("stockQuantity", dec.Quantity)}}

	// Size labels are field names. The catalog service rejects labels that
	// are not, so only documents written around it reach this guard.
	if dec.Size != "" && domain.ValidSizeLabel(dec.Size) {
		path := "sizeStock." + dec.Size
		set = append(set, bson.E{Key: path, Value: bson.M{
			"$cond": bson.A{
				bson.M{"$eq": bson.A{bson.M{"$type": "$" + path}, "missing"}},
				"$$REMOVE",
				floorSub(path, dec.Quantity),
			},
		}})
	}
	return mongo.Pipeline{{{Key: "$set", Value: set}}}
}

func (s *productStore) DecrementStock(
	ctx context.Context,
	id string,
	dec domain.StockDecrement,
) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Product
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, decrementPipeline(dec), opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("decrementing stock: %w", err)
	}

	s.store.productsHub.Publish()
	return &p, nil
}

func (s *productStore) Watch(ctx context.Context, filter domain.ProductFilter) (<-chan []domain.Product, error) {
	return stream(ctx, s.store, s.coll, s.store.productsHub,
		func(ctx context.Context) ([]domain.Product, error) {
			return s.List(ctx, filter)
		})
}

type categoryStore struct {
	coll *mongo.Collection
}

func (s *categoryStore) Save(ctx context.Context, c *domain.Category) error {
	return replace(ctx, s.coll, c.ID, c)
}

func (s *categoryStore) Get(ctx context.Context, id string) (*domain.Category, error) {
	var c domain.Category
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (s *categoryStore) List(ctx context.Context) ([]domain.Category, error) {
	return findAll[domain.Category](ctx, s.coll, bson.M{},
		bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *categoryStore) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.coll, id)
}

type bannerStore struct {
	coll *mongo.Collection
}

func (s *bannerStore) Save(ctx context.Context, b *domain.Banner) error {
	return replace(ctx, s.coll, b.ID, b)
}

func (s *bannerStore) List(ctx context.Context) ([]domain.Banner, error) {
	return findAll[domain.Banner](ctx, s.coll, bson.M{}, newestFirst)
}

func (s *bannerStore) Delete(ctx context.Context, id string) error {
	return deleteOne(ctx, s.coll, id)
}
