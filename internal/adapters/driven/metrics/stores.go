package metrics

import (
	"context"
	"time"

	"github.com/sssmarthaat/haat/internal/core/domain"
	"github.com/sssmarthaat/haat/internal/core/ports/driven"
)

// Operation names for instrumented store calls.
const (
	OpProductGet       = "store.products.get"
	OpProductList      = "store.products.list"
	OpProductSave      = "store.products.save"
	OpProductDecrement = "store.products.decrement"
	OpOrderCreate      = "store.orders.create"
	OpOrderUpdate      = "store.orders.update"
	OpOrderList        = "store.orders.list"
)

// InstrumentStores returns stores whose product and order calls report
// latencies to rec. A nil rec returns stores unchanged.
func InstrumentStores(stores driven.Stores, rec driven.LatencyRecorder) driven.Stores {
	if rec == nil {
		return stores
	}
	stores.Products = &timedProducts{ProductStore: stores.Products, rec: rec}
	stores.Orders = &timedOrders{OrderStore: stores.Orders, rec: rec}
	return stores
}

func observe(rec driven.LatencyRecorder, op string, start time.Time) {
	rec.Record(op, time.Since(start))
}

type timedProducts struct {
	driven.ProductStore
	rec driven.LatencyRecorder
}

func (t *timedProducts) Get(ctx context.Context, id string) (*domain.Product, error) {
	defer observe(t.rec, OpProductGet, time.Now())
	return t.ProductStore.Get(ctx, id)
}

func (t *timedProducts) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	defer observe(t.rec, OpProductList, time.Now())
	return t.ProductStore.List(ctx, f)
}

func (t *timedProducts) Save(ctx context.Context, p *domain.Product) error {
	defer observe(t.rec, OpProductSave, time.Now())
	return t.ProductStore.Save(ctx, p)
}

func (t *timedProducts) DecrementStock(
	ctx context.Context,
	id string,
	dec domain.StockDecrement,
) (*domain.Product, error) {
	defer observe(t.rec, OpProductDecrement, time.Now())
	return t.ProductStore.DecrementStock(ctx, id, dec)
}

type timedOrders struct {
	driven.OrderStore
	rec driven.LatencyRecorder
}

func (t *timedOrders) Create(ctx context.Context, o *domain.Order) error {
	defer observe(t.rec, OpOrderCreate, time.Now())
	return t.OrderStore.Create(ctx, o)
}

func (t *timedOrders) Update(ctx context.Context, o *domain.Order) error {
	defer observe(t.rec, OpOrderUpdate, time.Now())
	return t.OrderStore.Update(ctx, o)
}

func (t *timedOrders) List(ctx context.Context) ([]domain.Order, error) {
	defer observe(t.rec, OpOrderList, time.Now())
	return t.OrderStore.List(ctx)
}
