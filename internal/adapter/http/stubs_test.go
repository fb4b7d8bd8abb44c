package http

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

// Minimal in-memory stores for route tests.

type stubProducts struct {
	byID map[primitive.ObjectID]*entity.Product
}

func newStubProducts(products ...*entity.Product) *stubProducts {
	s := &stubProducts{byID: map[primitive.ObjectID]*entity.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.byID[p.ID] = p
	}
	return s
}

func (s *stubProducts) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) Insert(_ context.Context, p *entity.Product) error {
	p.ID = primitive.NewObjectID()
	if p.Status == "" {
		p.Status = entity.ProductActive
	}
	s.byID[p.ID] = p
	return nil
}

func (s *stubProducts) Update(_ context.Context, id primitive.ObjectID, p *entity.Product) (*entity.Product, error) {
	if _, ok := s.byID[id]; !ok {
		return nil, usecase.ErrNotFound
	}
	p.ID = id
	s.byID[id] = p
	return p, nil
}

func (s *stubProducts) Archive(_ context.Context, id primitive.ObjectID) error {
	p, ok := s.byID[id]
	if !ok {
		return usecase.ErrNotFound
	}
	p.Status = entity.ProductArchived
	return nil
}

func (s *stubProducts) List(_ context.Context, q usecase.ProductQuery) ([]entity.Product, int64, error) {
	status := q.Status
	if status == "" {
		status = entity.ProductActive
	}
	out := []entity.Product{}
	for _, p := range s.byID {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubProducts) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	p, ok := s.byID[id]
	if !ok {
		return false, usecase.ErrNotFound
	}
	if !p.TrackQuantity || p.Quantity < qty {
		return false, nil
	}
	p.Quantity -= qty
	return true, nil
}

func (s *stubProducts) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	if p, ok := s.byID[id]; ok {
		p.Quantity += qty
	}
	return nil
}

type stubCustomers struct {
	byID map[primitive.ObjectID]*entity.Customer
}

func newStubCustomers() *stubCustomers {
	return &stubCustomers{byID: map[primitive.ObjectID]*entity.Customer{}}
}

func (s *stubCustomers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Customer, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCustomers) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	for _, c := range s.byID {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, usecase.ErrNotFound
}

func (s *stubCustomers) Insert(_ context.Context, c *entity.Customer) error {
	c.ID = primitive.NewObjectID()
	s.byID[c.ID] = c
	return nil
}

func (s *stubCustomers) Update(_ context.Context, id primitive.ObjectID, c *entity.Customer) (*entity.Customer, error) {
	if _, ok := s.byID[id]; !ok {
		return nil, usecase.ErrNotFound
	}
	c.ID = id
	s.byID[id] = c
	return c, nil
}

func (s *stubCustomers) SetStats(_ context.Context, id primitive.ObjectID, orderCount int, totalSpent float64) error {
	if c, ok := s.byID[id]; ok {
		c.OrderCount = orderCount
		c.TotalSpent = totalSpent
	}
	return nil
}

func (s *stubCustomers) List(_ context.Context, _ usecase.CustomerQuery) ([]entity.Customer, int64, error) {
	out := []entity.Customer{}
	for _, c := range s.byID {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

type stubOrders struct {
	orders []*entity.Order
}

func (s *stubOrders) Insert(_ context.Context, o *entity.Order) error {
	o.ID = primitive.NewObjectID()
	s.orders = append(s.orders, o)
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, usecase.ErrNotFound
}

func (s *stubOrders) List(_ context.Context, _ usecase.OrderQuery) ([]entity.Order, int64, error) {
	out := []entity.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (s *stubOrders) ListByCustomer(_ context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	out := []entity.Order{}
	for _, o := range s.orders {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) ListPaidByCustomer(_ context.Context, customerID primitive.ObjectID) ([]entity.Order, error) {
	out := []entity.Order{}
	for _, o := range s.orders {
		if o.CustomerID == customerID && o.Payment.Status == entity.PaymentPaid {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id primitive.ObjectID, patch usecase.StatusPatch) (*entity.Order, error) {
	for _, o := range s.orders {
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
	return nil, usecase.ErrNotFound
}

func (s *stubOrders) Stats(_ context.Context) (*usecase.OrderStats, error) {
	stats := &usecase.OrderStats{StatusCounts: map[string]int64{}}
	for _, o := range s.orders {
		stats.TotalOrders++
		stats.StatusCounts[string(o.Status)]++
		if o.Payment.Status == entity.PaymentPaid {
			stats.TotalRevenue += o.Total
		}
	}
	return stats, nil
}

type stubSequence struct{ n int64 }

func (s *stubSequence) Next(_ context.Context, _ string) (int64, error) {
	s.n++
	return s.n, nil
}

type stubUsers struct {
	byID map[primitive.ObjectID]*entity.User
}

func newStubUsers(users ...*entity.User) *stubUsers {
	s := &stubUsers{byID: map[primitive.ObjectID]*entity.User{}}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		s.byID[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id primitive.ObjectID) (*entity.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, usecase.ErrNotFound
}

func (s *stubUsers) Insert(_ context.Context, u *entity.User) error {
	u.ID = primitive.NewObjectID()
	s.byID[u.ID] = u
	return nil
}

func (s *stubUsers) SetLastLogin(_ context.Context, _ primitive.ObjectID) error { return nil }
