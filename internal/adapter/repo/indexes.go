package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique keys the data model relies on:
// user/customer emails, order numbers and product SKUs. Safe to call on
// every startup; existing indexes are no-ops.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)
	sparse := options.Index().SetUnique(true).SetSparse(true)

	specs := map[string][]mongo.IndexModel{
		colUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colCustomers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		colProducts: {
			{Keys: bson.D{{Key: "sku", Value: 1}}, Options: sparse},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colOrders: {
			{Keys: bson.D{{Key: "orderNumber", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "customer", Value: 1}, {Key: "payment.status", Value: 1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for col, models := range specs {
		if _, err := db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("indexes for %s: %w", col, err)
		}
	}
	return nil
}
