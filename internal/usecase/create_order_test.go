package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
)

func newWorkflow(products *fakeProducts, customers *fakeCustomers, orders *fakeOrders) *CreateOrder {
	stats := NewCustomerStats(customers, orders)
	return NewCreateOrder(products, customers, orders, &fakeSequence{}, stats)
}

func checkoutInput(product *entity.Product, qty int) CreateOrderInput {
	return CreateOrderInput{
		Items: []OrderItemInput{{ProductID: product.ID.Hex(), Quantity: qty}},
		Customer: CustomerInput{
			Email:           "jane@example.com",
			FirstName:       "Jane",
			LastName:        "Doe",
			ShippingAddress: entity.Address{Address1: "1 Main St", City: "Springfield", Country: "US"},
		},
		Shipping: entity.ShippingInfo{Method: "standard", Cost: 5},
		Payment:  entity.PaymentInfo{Method: "card"},
	}
}

func TestCreateOrder_TotalsAndStock(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 12.5, TrackQuantity: true, Quantity: 5, Status: entity.ProductActive}
	products := newFakeProducts(product)
	customers := newFakeCustomers()
	orders := &fakeOrders{}
	uc := newWorkflow(products, customers, orders)

	order, err := uc.Execute(context.Background(), checkoutInput(product, 3))
	require.NoError(t, err)

	assert.Equal(t, 12.5*3, order.Subtotal)
	assert.Equal(t, order.Subtotal+order.Shipping.Cost+order.Tax-order.Discount.Amount, order.Total)
	assert.Zero(t, order.Tax)
	assert.Equal(t, 2, products.byID[product.ID].Quantity)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, entity.PaymentPending, order.Payment.Status)
	assert.Equal(t, entity.Unfulfilled, order.Fulfillment.Status)

	// Second order for the remaining 2 + 1 more must fail and leave
	// stock untouched.
	_, err = uc.Execute(context.Background(), checkoutInput(product, 3))
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, products.byID[product.ID].Quantity)
}

func TestCreateOrder_SnapshotsCurrentPrice(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 20, Status: entity.ProductActive}
	products := newFakeProducts(product)
	uc := newWorkflow(products, newFakeCustomers(), &fakeOrders{})

	in := checkoutInput(product, 2)
	order, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 20.0, order.Items[0].Price)
	assert.Equal(t, 40.0, order.Items[0].Total)

	// Later price changes must not affect the stored line.
	products.byID[product.ID].Price = 99
	assert.Equal(t, 20.0, order.Items[0].Price)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	uc := newWorkflow(newFakeProducts(), newFakeCustomers(), &fakeOrders{})

	in := CreateOrderInput{
		Items:    []OrderItemInput{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1}},
		Customer: CustomerInput{Email: "jane@example.com"},
	}
	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrder_ArchivedProductRejected(t *testing.T) {
	product := &entity.Product{Name: "Old", Price: 10, Status: entity.ProductArchived}
	uc := newWorkflow(newFakeProducts(product), newFakeCustomers(), &fakeOrders{})

	_, err := uc.Execute(context.Background(), checkoutInput(product, 1))
	assert.ErrorIs(t, err, ErrNotPurchasable)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	uc := newWorkflow(newFakeProducts(), newFakeCustomers(), &fakeOrders{})
	_, err := uc.Execute(context.Background(), CreateOrderInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateOrder_CompensatesLostRace(t *testing.T) {
	first := &entity.Product{Name: "A", Price: 10, TrackQuantity: true, Quantity: 10, Status: entity.ProductActive}
	second := &entity.Product{Name: "B", Price: 10, TrackQuantity: true, Quantity: 10, Status: entity.ProductActive}
	products := newFakeProducts(first, second)
	// Snapshot validation passes, but the decrement on B loses the race.
	products.stolenStock[second.ID] = true

	uc := newWorkflow(products, newFakeCustomers(), &fakeOrders{})
	in := CreateOrderInput{
		Items: []OrderItemInput{
			{ProductID: first.ID.Hex(), Quantity: 4},
			{ProductID: second.ID.Hex(), Quantity: 4},
		},
		Customer: CustomerInput{Email: "jane@example.com"},
	}

	_, err := uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 10, products.byID[first.ID].Quantity, "applied decrement must be reverted")
	assert.Equal(t, 10, products.byID[second.ID].Quantity)
}

func TestCreateOrder_CustomerUpsertCaseInsensitive(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 10, Status: entity.ProductActive}
	products := newFakeProducts(product)
	customers := newFakeCustomers()
	orders := &fakeOrders{}
	uc := newWorkflow(products, customers, orders)

	in := checkoutInput(product, 1)
	in.Customer.Email = "Jane@Example.COM"
	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", first.Email)

	in.Customer.Email = "JANE@example.com"
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.CustomerID, second.CustomerID, "case variants must resolve to the same customer")
	assert.Len(t, customers.byID, 1)
}

func TestCreateOrder_NumbersIncreaseSequentially(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 10, Status: entity.ProductActive}
	uc := newWorkflow(newFakeProducts(product), newFakeCustomers(), &fakeOrders{})

	var numbers []string
	for i := 0; i < 3; i++ {
		order, err := uc.Execute(context.Background(), checkoutInput(product, 1))
		require.NoError(t, err)
		numbers = append(numbers, order.OrderNumber)
	}
	assert.Equal(t, []string{"ORD000001", "ORD000002", "ORD000003"}, numbers)
}

func TestCreateOrder_BillingDefaultsToShipping(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 10, Status: entity.ProductActive}
	uc := newWorkflow(newFakeProducts(product), newFakeCustomers(), &fakeOrders{})

	order, err := uc.Execute(context.Background(), checkoutInput(product, 1))
	require.NoError(t, err)
	assert.Equal(t, order.ShippingAddress, order.BillingAddress)
}

func TestCreateOrder_NewCustomerStartsUnpaid(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 10, Status: entity.ProductActive}
	products := newFakeProducts(product)
	customers := newFakeCustomers()
	orders := &fakeOrders{}
	uc := newWorkflow(products, customers, orders)

	order, err := uc.Execute(context.Background(), checkoutInput(product, 1))
	require.NoError(t, err)

	// Unpaid order: aggregates stay at zero.
	c := customers.byID[order.CustomerID]
	assert.Equal(t, 0, c.OrderCount)
	assert.Zero(t, c.TotalSpent)

	// Mark paid and recompute via the status handler.
	stats := NewCustomerStats(customers, orders)
	update := NewUpdateOrderStatus(orders, stats)
	paid := entity.PaymentPaid
	_, err = update.Execute(context.Background(), order.ID, StatusPatch{PaymentStatus: &paid})
	require.NoError(t, err)

	assert.Equal(t, 1, c.OrderCount)
	assert.Equal(t, order.Total, c.TotalSpent)
}

func TestCreateOrder_DiscountReducesTotal(t *testing.T) {
	product := &entity.Product{Name: "Mug", Price: 30, Status: entity.ProductActive}
	uc := newWorkflow(newFakeProducts(product), newFakeCustomers(), &fakeOrders{})

	in := checkoutInput(product, 1)
	in.Discount = entity.Discount{Code: "SAVE10", Amount: 10}
	order, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 30+in.Shipping.Cost-10, order.Total)
}
