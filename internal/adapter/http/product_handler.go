package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/storekit/storefront-api/internal/entity"
	"github.com/storekit/storefront-api/internal/usecase"
)

type ProductHandler struct {
	products usecase.ProductStore
}

func NewProductHandler(products usecase.ProductStore) *ProductHandler {
	return &ProductHandler{products: products}
}

// List serves the storefront catalog. Without an explicit status filter
// only active products are returned.
func (h *ProductHandler) List(c *gin.Context) {
	page, limit := pageParams(c, 12)
	q := usecase.ProductQuery{
		Status:      entity.ProductStatus(c.Query("status")),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		MinPrice:    floatParam(c, "minPrice"),
		MaxPrice:    floatParam(c, "maxPrice"),
		InStockOnly: c.Query("inStock") == "true",
		Sort:        c.DefaultQuery("sort", "createdAt"),
		SortAsc:     c.Query("order") == "asc",
		Page:        page,
		Limit:       limit,
	}

	products, total, err := h.products.List(c.Request.Context(), q)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, listEnvelope(products, total, page, limit))
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type productReq struct {
	Name          string                `json:"name" binding:"required"`
	Description   string                `json:"description" binding:"required"`
	Price         float64               `json:"price" binding:"required,gte=0"`
	ComparePrice  float64               `json:"comparePrice" binding:"omitempty,gte=0"`
	CostPerItem   float64               `json:"costPerItem" binding:"omitempty,gte=0"`
	SKU           string                `json:"sku"`
	Barcode       string                `json:"barcode"`
	TrackQuantity *bool                 `json:"trackQuantity"`
	Quantity      int                   `json:"quantity" binding:"omitempty,gte=0"`
	Categories    []string              `json:"categories"`
	Tags          []string              `json:"tags"`
	Images        []entity.ProductImage `json:"images"`
	Status        entity.ProductStatus  `json:"status" binding:"omitempty,oneof=active draft archived"`
	SEO           entity.ProductSEO     `json:"seo"`
	Weight        float64               `json:"weight"`
	WeightUnit    string                `json:"weightUnit" binding:"omitempty,oneof=kg g lb oz"`
}

func (r productReq) toEntity() *entity.Product {
	track := true
	if r.TrackQuantity != nil {
		track = *r.TrackQuantity
	}
	return &entity.Product{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		ComparePrice:  r.ComparePrice,
		CostPerItem:   r.CostPerItem,
		SKU:           r.SKU,
		Barcode:       r.Barcode,
		TrackQuantity: track,
		Quantity:      r.Quantity,
		Categories:    r.Categories,
		Tags:          r.Tags,
		Images:        r.Images,
		Status:        r.Status,
		SEO:           r.SEO,
		Weight:        r.Weight,
		WeightUnit:    r.WeightUnit,
	}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	product := req.toEntity()
	if err := h.products.Insert(c.Request.Context(), product); err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	current, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		failErr(c, err)
		return
	}
	product := req.toEntity()
	product.CreatedAt = current.CreatedAt
	if product.Status == "" {
		product.Status = current.Status
	}

	updated, err := h.products.Update(c.Request.Context(), id, product)
	if err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete archives instead of removing; orders keep valid references.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if err := h.products.Archive(c.Request.Context(), id); err != nil {
		failErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product archived successfully"})
}
