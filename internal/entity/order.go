package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type FulfillmentStatus string

const (
	Unfulfilled        FulfillmentStatus = "unfulfilled"
	Fulfilled          FulfillmentStatus = "fulfilled"
	PartiallyFulfilled FulfillmentStatus = "partially-fulfilled"
)

// OrderItem is a line captured at creation time. Price and Total are
// snapshots of the catalog price at that moment and never change with
// later product edits.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Variant   string             `bson:"variant,omitempty" json:"variant,omitempty"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
	Total     float64            `bson:"total" json:"total"`
}

type ShippingInfo struct {
	Method string  `bson:"method,omitempty" json:"method,omitempty"`
	Cost   float64 `bson:"cost" json:"cost"`
}

type Discount struct {
	Code   string  `bson:"code,omitempty" json:"code,omitempty"`
	Amount float64 `bson:"amount" json:"amount"`
}

type PaymentInfo struct {
	Method        string        `bson:"method,omitempty" json:"method,omitempty"`
	Status        PaymentStatus `bson:"status" json:"status"`
	TransactionID string        `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Gateway       string        `bson:"gateway,omitempty" json:"gateway,omitempty"`
}

type FulfillmentInfo struct {
	Status         FulfillmentStatus `bson:"status" json:"status"`
	TrackingNumber string            `bson:"trackingNumber,omitempty" json:"trackingNumber,omitempty"`
	Carrier        string            `bson:"carrier,omitempty" json:"carrier,omitempty"`
}

// Order is created once by the checkout workflow and afterwards only
// transitions status, payment and fulfillment sub-records. Orders are
// never deleted.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	CustomerID      primitive.ObjectID `bson:"customer" json:"customer"`
	Email           string             `bson:"email" json:"email"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ShippingAddress Address            `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  Address            `bson:"billingAddress" json:"billingAddress"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	Shipping        ShippingInfo       `bson:"shipping" json:"shipping"`
	Tax             float64            `bson:"tax" json:"tax"`
	Discount        Discount           `bson:"discount" json:"discount"`
	Total           float64            `bson:"total" json:"total"`
	Payment         PaymentInfo        `bson:"payment" json:"payment"`
	Status          OrderStatus        `bson:"status" json:"status"`
	Fulfillment     FulfillmentInfo    `bson:"fulfillment" json:"fulfillment"`
	Notes           string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CalculateTotals derives subtotal and total from the line items and the
// shipping/tax/discount fields: total = subtotal + shipping + tax - discount.
func (o *Order) CalculateTotals() {
	o.Subtotal = 0
	for _, it := range o.Items {
		o.Subtotal += it.Total
	}
	o.Total = o.Subtotal + o.Shipping.Cost + o.Tax - o.Discount.Amount
}
