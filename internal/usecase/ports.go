package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
)

// Query types shared by the list endpoints. Page is 1-based; Limit is
// clamped by the repositories.

type ProductQuery struct {
	Status      entity.ProductStatus // defaults to active
	Category    string
	Search      string
	MinPrice    *float64
	MaxPrice    *float64
	InStockOnly bool
	Sort        string
	SortAsc     bool
	Page        int64
	Limit       int64
}

type OrderQuery struct {
	Status     entity.OrderStatus
	CustomerID *primitive.ObjectID
	StartDate  string // RFC 3339 or yyyy-mm-dd, passed through to the repo
	EndDate    string
	Search     string
	Page       int64
	Limit      int64
}

type CustomerQuery struct {
	Search  string
	Sort    string
	SortAsc bool
	Page    int64
	Limit   int64
}

// StatusPatch carries the mutable post-creation fields of an order. Nil
// members are left untouched.
type StatusPatch struct {
	Status        *entity.OrderStatus
	Fulfillment   *entity.FulfillmentInfo
	PaymentStatus *entity.PaymentStatus
}

// OrderStats is the dashboard aggregate.
type OrderStats struct {
	TotalOrders    int64            `json:"totalOrders"`
	TotalRevenue   float64          `json:"totalRevenue"`
	MonthlyRevenue float64          `json:"monthlyRevenue"`
	TodayOrders    int64            `json:"todayOrders"`
	StatusCounts   map[string]int64 `json:"statusCounts"`
}

type ProductStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	Insert(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, id primitive.ObjectID, p *entity.Product) (*entity.Product, error)
	Archive(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, q ProductQuery) ([]entity.Product, int64, error)

	// DecrementStock atomically subtracts qty when at least qty is still
	// available; it reports false when the guard fails.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

type CustomerStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Insert(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, id primitive.ObjectID, c *entity.Customer) (*entity.Customer, error)
	SetStats(ctx context.Context, id primitive.ObjectID, orderCount int, totalSpent float64) error
	List(ctx context.Context, q CustomerQuery) ([]entity.Customer, int64, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *entity.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Order, error)
	List(ctx context.Context, q OrderQuery) ([]entity.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error)
	ListPaidByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, patch StatusPatch) (*entity.Order, error)
	Stats(ctx context.Context) (*OrderStats, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	SetLastLogin(ctx context.Context, id primitive.ObjectID) error
}

// SequenceStore hands out strictly increasing integers per named
// sequence, atomic under concurrent callers.
type SequenceStore interface {
	Next(ctx context.Context, name string) (int64, error)
}
