package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomerAddress struct {
	Type    string `bson:"type" json:"type"` // billing | shipping
	Address `bson:",inline"`
	Default bool `bson:"default,omitempty" json:"default,omitempty"`
}

// Customer holds identity and the cached order aggregates. OrderCount and
// TotalSpent are projections over the customer's paid orders; they are
// recomputed by the stats usecase, never incremented in place.
type Customer struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email            string             `bson:"email" json:"email"` // stored lowercase
	FirstName        string             `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName         string             `bson:"lastName,omitempty" json:"lastName,omitempty"`
	Phone            string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses        []CustomerAddress  `bson:"addresses,omitempty" json:"addresses,omitempty"`
	OrderCount       int                `bson:"orderCount" json:"orderCount"`
	TotalSpent       float64            `bson:"totalSpent" json:"totalSpent"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	AcceptsMarketing bool               `bson:"acceptsMarketing" json:"acceptsMarketing"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
