package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type OrderHandler struct {
	create *usecase.CreateOrder
	update *usecase.UpdateOrderStatus
	orders usecase.OrderStore
}

func NewOrderHandler(create *usecase.CreateOrder, update *usecase.UpdateOrderStatus, orders usecase.OrderStore) *OrderHandler {
	return &OrderHandler{create: create, update: update, orders: orders}
}

type orderItemReq struct {
	Product  string `json:"product" binding:"required"`
	Variant  string `json:"variant"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type customerInfoReq struct {
	Email           string          `json:"email" binding:"required,email"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Phone           string          `json:"phone"`
	ShippingAddress entity.Address  `json:"shippingAddress"`
	BillingAddress  *entity.Address `json:"billingAddress"`
	Discount        *entity.Discount `json:"discount"`
}

type createOrderReq struct {
	Items        []orderItemReq      `json:"items" binding:"required,min=1,dive"`
	CustomerInfo customerInfoReq     `json:"customerInfo" binding:"required"`
	Shipping     entity.ShippingInfo `json:"shipping"`
	Payment      entity.PaymentInfo  `json:"payment"`
	Notes        string              `json:"notes"`
}

// Create runs the checkout workflow. Bad product references and stock
// shortfalls surface as 400s with the offending product named, matching
// what the storefront checkout page renders inline.
func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	in := usecase.CreateOrderInput{
		Customer: usecase.CustomerInput{
			Email:           req.CustomerInfo.Email,
			FirstName:       req.CustomerInfo.FirstName,
			LastName:        req.CustomerInfo.LastName,
			Phone:           req.CustomerInfo.Phone,
			ShippingAddress: req.CustomerInfo.ShippingAddress,
		},
		Shipping: req.Shipping,
		Payment:  req.Payment,
		Notes:    req.Notes,
	}
	if req.CustomerInfo.BillingAddress != nil {
		in.Customer.BillingAddress = *req.CustomerInfo.BillingAddress
	}
	if req.CustomerInfo.Discount != nil {
		in.Discount = *req.CustomerInfo.Discount
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, usecase.OrderItemInput{
			ProductID: it.Product,
			Variant:   it.Variant,
			Quantity:  it.Quantity,
		})
	}

	order, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		// The checkout form treats a vanished product the same as any
		// other rejected line, so not-found is a 400 here.
		if errors.Is(err, usecase.ErrNotFound) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		failErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 20)
	q := usecase.OrderQuery{
		Status:    entity.OrderStatus(c.Query("status")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
	}
	if raw := c.Query("customer"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid customer id")
			return
		}
		q.CustomerID = &id
	}

	orders, total, err := h.orders.List(c.Request.Context(), q)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(orders, total, page, limit))
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	order, err := h.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateStatusReq struct {
	Status        *entity.OrderStatus     `json:"status" binding:"omitempty,oneof=pending processing shipped delivered cancelled refunded"`
	Fulfillment   *entity.FulfillmentInfo `json:"fulfillment"`
	PaymentStatus *entity.PaymentStatus   `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed refunded"`
}

// UpdateStatus mutates status/fulfillment/payment after creation. A
// payment transition to or from "paid" triggers the customer aggregate
// recompute inside the usecase.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.update.Execute(c.Request.Context(), id, usecase.StatusPatch{
		Status:        req.Status,
		Fulfillment:   req.Fulfillment,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Stats powers the admin dashboard poller.
func (h *OrderHandler) Stats(c *gin.Context) {
	stats, err := h.orders.Stats(c.Request.Context())
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
