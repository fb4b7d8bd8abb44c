package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type CustomerHandler struct {
	customers usecase.CustomerStore
	orders    usecase.OrderStore
}

func NewCustomerHandler(customers usecase.CustomerStore, orders usecase.OrderStore) *CustomerHandler {
	return &CustomerHandler{customers: customers, orders: orders}
}

func (h *CustomerHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 20)
	q := usecase.CustomerQuery{
		Search:  c.Query("search"),
		Sort:    c.DefaultQuery("sort", "createdAt"),
		SortAsc: c.Query("order") == "asc",
		Page:    page,
		Limit:   limit,
	}

	customers, total, err := h.customers.List(c.Request.Context(), q)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(customers, total, page, limit))
}

// Get returns the customer together with their order history.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	customer, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	orders, err := h.orders.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "orders": orders})
}

type customerReq struct {
	Email            string                   `json:"email" binding:"required,email"`
	FirstName        string                   `json:"firstName"`
	LastName         string                   `json:"lastName"`
	Phone            string                   `json:"phone"`
	Addresses        []entity.CustomerAddress `json:"addresses"`
	Tags             []string                 `json:"tags"`
	Notes            string                   `json:"notes"`
	AcceptsMarketing bool                     `json:"acceptsMarketing"`
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	current, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}

	// The cached aggregates belong to the stats recompute, not to the
	// admin form.
	updated := &entity.Customer{
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		Addresses:        req.Addresses,
		Tags:             req.Tags,
		Notes:            req.Notes,
		AcceptsMarketing: req.AcceptsMarketing,
		OrderCount:       current.OrderCount,
		TotalSpent:       current.TotalSpent,
		CreatedAt:        current.CreatedAt,
	}
	out, err := h.customers.Update(c.Request.Context(), id, updated)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Stats reports the paid-order aggregates for one customer, plus the
// last order date regardless of payment status.
func (h *CustomerHandler) Stats(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Customer not found")
		return
	}
	customer, err := h.customers.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}

	paid, err := h.orders.ListPaidByCustomer(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	var totalSpent float64
	for _, o := range paid {
		totalSpent += o.Total
	}
	avg := 0.0
	if len(paid) > 0 {
		avg = totalSpent / float64(len(paid))
	}

	all, err := h.orders.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	resp := gin.H{
		"totalOrders":       len(paid),
		"totalSpent":        totalSpent,
		"averageOrderValue": avg,
		"customerSince":     customer.CreatedAt,
	}
	if len(all) > 0 {
		resp["lastOrderDate"] = all[0].CreatedAt
	}
	c.JSON(http.StatusOK, resp)
}
