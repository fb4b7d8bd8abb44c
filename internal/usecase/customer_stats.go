package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomerStats recomputes the cached orderCount/totalSpent projection
// from scratch. Only orders with payment status "paid" count. The full
// rescan keeps the call idempotent: it always reflects the current paid
// set and never accumulates drift, so it is safe to run after every
// payment-status change, not just at checkout.
type CustomerStats struct {
	customers CustomerStore
	orders    OrderStore
}

func NewCustomerStats(customers CustomerStore, orders OrderStore) *CustomerStats {
	return &CustomerStats{customers: customers, orders: orders}
}

func (uc *CustomerStats) Recompute(ctx context.Context, customerID primitive.ObjectID) error {
	paid, err := uc.orders.ListPaidByCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("list paid orders: %w", err)
	}

	var total float64
	for _, o := range paid {
		total += o.Total
	}

	if err := uc.customers.SetStats(ctx, customerID, len(paid), total); err != nil {
		return fmt.Errorf("store customer stats: %w", err)
	}
	return nil
}
