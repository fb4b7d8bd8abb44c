package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/logging"
)

type OrderItemInput struct {
	ProductID string
	Variant   string
	Quantity  int
}

type CustomerInput struct {
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	ShippingAddress entity.Address
	BillingAddress  entity.Address // optional; falls back to shipping
}

type CreateOrderInput struct {
	Items    []OrderItemInput
	Customer CustomerInput
	Shipping entity.ShippingInfo
	Discount entity.Discount
	Payment  entity.PaymentInfo
	Notes    string
}

// CreateOrder runs the checkout workflow: validate the whole request
// against one catalog snapshot, apply guarded stock decrements, upsert
// the customer by email, assign the next order number and persist the
// order. Stock checks and decrements happen in two phases so a failing
// line never leaves earlier lines half-applied.
type CreateOrder struct {
	products  ProductStore
	customers CustomerStore
	orders    OrderStore
	seq       SequenceStore
	stats     *CustomerStats
}

func NewCreateOrder(products ProductStore, customers CustomerStore, orders OrderStore, seq SequenceStore, stats *CustomerStats) *CreateOrder {
	return &CreateOrder{products: products, customers: customers, orders: orders, seq: seq, stats: stats}
}

type pricedItem struct {
	product *entity.Product
	item    entity.OrderItem
}

func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*entity.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("order has no items: %w", ErrInvalidInput)
	}

	// Phase one: resolve and validate every line before touching stock.
	priced, err := uc.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	// Phase two: guarded decrements, compensated on a lost race.
	if err := uc.applyStock(ctx, priced); err != nil {
		return nil, err
	}

	customer, err := uc.resolveCustomer(ctx, in.Customer)
	if err != nil {
		return nil, err
	}

	seq, err := uc.seq.Next(ctx, orderSequence)
	if err != nil {
		return nil, fmt.Errorf("order sequence: %w", err)
	}

	billing := in.Customer.BillingAddress
	if billing.IsZero() {
		billing = in.Customer.ShippingAddress
	}

	payment := in.Payment
	if payment.Status == "" {
		payment.Status = entity.PaymentPending
	}

	now := time.Now().UTC()
	order := &entity.Order{
		OrderNumber:     FormatOrderNumber(seq),
		CustomerID:      customer.ID,
		Email:           customer.Email,
		Phone:           in.Customer.Phone,
		ShippingAddress: in.Customer.ShippingAddress,
		BillingAddress:  billing,
		Shipping:        in.Shipping,
		Tax:             0, // no tax engine
		Discount:        in.Discount,
		Payment:         payment,
		Status:          entity.OrderPending,
		Fulfillment:     entity.FulfillmentInfo{Status: entity.Unfulfilled},
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, p := range priced {
		order.Items = append(order.Items, p.item)
	}
	order.CalculateTotals()

	if err := uc.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	// The fresh order is unpaid, so this usually leaves the aggregates
	// untouched; it still runs to keep them honest after retries.
	if err := uc.stats.Recompute(ctx, customer.ID); err != nil {
		logging.FromCtx(ctx).Warn("customer stats recompute failed",
			"customer", customer.ID.Hex(), "error", err)
	}

	return order, nil
}

func (uc *CreateOrder) priceItems(ctx context.Context, items []OrderItemInput) ([]pricedItem, error) {
	priced := make([]pricedItem, 0, len(items))
	for _, it := range items {
		id, err := primitive.ObjectIDFromHex(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, ErrNotFound)
		}
		product, err := uc.products.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", it.ProductID, err)
		}
		if product.Status != entity.ProductActive {
			return nil, fmt.Errorf("%s: %w", product.Name, ErrNotPurchasable)
		}
		if product.TrackQuantity && product.Quantity < it.Quantity {
			return nil, fmt.Errorf("insufficient quantity for %s: %w", product.Name, ErrInsufficientStock)
		}
		priced = append(priced, pricedItem{
			product: product,
			item: entity.OrderItem{
				ProductID: product.ID,
				Variant:   it.Variant,
				Quantity:  it.Quantity,
				Price:     product.Price, // current catalog price wins
				Total:     product.Price * float64(it.Quantity),
			},
		})
	}
	return priced, nil
}

func (uc *CreateOrder) applyStock(ctx context.Context, priced []pricedItem) error {
	applied := make([]pricedItem, 0, len(priced))
	for _, p := range priced {
		if !p.product.TrackQuantity {
			continue
		}
		ok, err := uc.products.DecrementStock(ctx, p.product.ID, p.item.Quantity)
		if err == nil && !ok {
			// A concurrent order took the stock between our snapshot
			// and the decrement.
			err = fmt.Errorf("insufficient quantity for %s: %w", p.product.Name, ErrInsufficientStock)
		}
		if err != nil {
			uc.revertStock(ctx, applied)
			return err
		}
		applied = append(applied, p)
	}
	return nil
}

func (uc *CreateOrder) revertStock(ctx context.Context, applied []pricedItem) {
	for _, p := range applied {
		if err := uc.products.IncrementStock(ctx, p.product.ID, p.item.Quantity); err != nil {
			logging.FromCtx(ctx).Error("stock compensation failed",
				"product", p.product.ID.Hex(), "qty", p.item.Quantity, "error", err)
		}
	}
}

// resolveCustomer is an upsert keyed on the lowercased email.
func (uc *CreateOrder) resolveCustomer(ctx context.Context, in CustomerInput) (*entity.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	customer, err := uc.customers.GetByEmail(ctx, email)
	if err == nil {
		return customer, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("lookup customer: %w", err)
	}

	now := time.Now().UTC()
	customer = &entity.Customer{
		Email:     email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customers.Insert(ctx, customer); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}
