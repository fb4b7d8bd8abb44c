package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductDraft    ProductStatus = "draft"
	ProductArchived ProductStatus = "archived"
)

type ProductImage struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt,omitempty" json:"alt,omitempty"`
}

type ProductSEO struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Slug        string `bson:"slug,omitempty" json:"slug,omitempty"`
}

// Product is a catalog document. Quantity is meaningful only when
// TrackQuantity is set; an archived product is never purchasable.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	ComparePrice  float64            `bson:"comparePrice,omitempty" json:"comparePrice,omitempty"`
	CostPerItem   float64            `bson:"costPerItem,omitempty" json:"costPerItem,omitempty"`
	SKU           string             `bson:"sku,omitempty" json:"sku,omitempty"`
	Barcode       string             `bson:"barcode,omitempty" json:"barcode,omitempty"`
	TrackQuantity bool               `bson:"trackQuantity" json:"trackQuantity"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	Categories    []string           `bson:"categories,omitempty" json:"categories,omitempty"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Images        []ProductImage     `bson:"images,omitempty" json:"images,omitempty"`
	Status        ProductStatus      `bson:"status" json:"status"`
	SEO           ProductSEO         `bson:"seo,omitempty" json:"seo,omitempty"`
	Weight        float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	WeightUnit    string             `bson:"weightUnit,omitempty" json:"weightUnit,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InStock reports whether the product can currently be sold.
func (p *Product) InStock() bool {
	return !p.TrackQuantity || p.Quantity > 0
}
