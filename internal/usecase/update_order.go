package usecase

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
)

// UpdateOrderStatus mutates the post-creation sub-records of an order.
// Whenever the payment status moves to or away from "paid" the cached
// customer aggregates are recomputed; that transition is the only event
// that changes what the projection counts.
type UpdateOrderStatus struct {
	orders OrderStore
	stats  *CustomerStats
}

func NewUpdateOrderStatus(orders OrderStore, stats *CustomerStats) *UpdateOrderStatus {
	return &UpdateOrderStatus{orders: orders, stats: stats}
}

func (uc *UpdateOrderStatus) Execute(ctx context.Context, id primitive.ObjectID, patch StatusPatch) (*entity.Order, error) {
	before, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := uc.orders.UpdateStatus(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if patch.PaymentStatus != nil && *patch.PaymentStatus != before.Payment.Status {
		if err := uc.stats.Recompute(ctx, updated.CustomerID); err != nil {
			return nil, fmt.Errorf("recompute customer stats: %w", err)
		}
	}
	return updated, nil
}
