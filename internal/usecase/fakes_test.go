package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
)

// In-memory stores backing the workflow tests.

type fakeProducts struct {
	byID map[primitive.ObjectID]*entity.Product

	// stolenStock simulates a concurrent order winning the stock between
	// the snapshot read and the guarded decrement.
	stolenStock map[primitive.ObjectID]bool
}

func newFakeProducts(products ...*entity.Product) *fakeProducts {
	f := &fakeProducts{
		byID:        map[primitive.ObjectID]*entity.Product{},
		stolenStock: map[primitive.ObjectID]bool{},
	}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProducts) Insert(_ context.Context, p *entity.Product) error {
	p.ID = primitive.NewObjectID()
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProducts) Update(_ context.Context, id primitive.ObjectID, p *entity.Product) (*entity.Product, error) {
	if _, ok := f.byID[id]; !ok {
		return nil, ErrNotFound
	}
	p.ID = id
	f.byID[id] = p
	return p, nil
}

func (f *fakeProducts) Archive(_ context.Context, id primitive.ObjectID) error {
	p, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = entity.ProductArchived
	return nil
}

func (f *fakeProducts) List(_ context.Context, q ProductQuery) ([]entity.Product, int64, error) {
	var out []entity.Product
	status := q.Status
	if status == "" {
		status = entity.ProductActive
	}
	for _, p := range f.byID {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProducts) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	p, ok := f.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if f.stolenStock[id] || !p.TrackQuantity || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (f *fakeProducts) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	p, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	p.Quantity += qty
	return nil
}

type fakeCustomers struct {
	byID map[primitive.ObjectID]*entity.Customer
}

func newFakeCustomers(customers ...*entity.Customer) *fakeCustomers {
	f := &fakeCustomers{byID: map[primitive.ObjectID]*entity.Customer{}}
	for _, c := range customers {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range f.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeCustomers) Insert(_ context.Context, c *entity.Customer) error {
	c.ID = primitive.NewObjectID()
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCustomers) Update(_ context.Context, id primitive.ObjectID, c *entity.Customer) (*entity.Customer, error) {
	if _, ok := f.byID[id]; !ok {
		return nil, ErrNotFound
	}
	c.ID = id
	f.byID[id] = c
	return c, nil
}

func (f *fakeCustomers) SetStats(_ context.Context, id primitive.ObjectID, orderCount int, totalSpent float64) error {
	c, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	c.OrderCount = orderCount
	c.TotalSpent = totalSpent
	return nil
}

func (f *fakeCustomers) List(_ context.Context, _ CustomerQuery) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type fakeOrders struct {
	orders []*entity.Order
}

func (f *fakeOrders) Insert(_ context.Context, o *entity.Order) error {
	o.ID = primitive.NewObjectID()
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrders) List(_ context.Context, _ OrderQuery) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrders) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) ListPaidByCustomer(_ context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID && o.Payment.Status == entity.PaymentPaid {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, patch StatusPatch) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID != id {
			continue
		}
		if patch.Status != nil {
			o.Status = *patch.Status
		}
		if patch.Fulfillment != nil {
			o.Fulfillment = *patch.Fulfillment
		}
		if patch.PaymentStatus != nil {
			o.Payment.Status = *patch.PaymentStatus
		}
		cp := *o
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (f *fakeOrders) Stats(_ context.Context) (*OrderStats, error) {
	stats := &OrderStats{StatusCounts: map[string]int64{}}
	for _, o := range f.orders {
		stats.TotalOrders++
		stats.StatusCounts[string(o.Status)]++
		if o.Payment.Status == entity.PaymentPaid {
			stats.TotalRevenue += o.Total
		}
	}
	return stats, nil
}

type fakeSequence struct {
	n int64
}

func (f *fakeSequence) Next(_ context.Context, _ string) (int64, error) {
	f.n++
	return f.n, nil
}
