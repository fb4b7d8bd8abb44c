package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/storekit/storefront-api/internal/adapter/http/middleware"
)

// PageHandler serves the template-rendered storefront and admin pages.
// Pages read the login-time session snapshot for the header; the API
// layer is what enforces fresh roles.
type PageHandler struct {
	storeName string
}

func NewPageHandler(storeName string) *PageHandler {
	return &PageHandler{storeName: storeName}
}

func (h *PageHandler) render(c *gin.Context, tmpl, title string, extra gin.H) {
	data := gin.H{"title": title + " - " + h.storeName}
	if sess, ok := middleware.SessionFrom(c); ok {
		data["user"] = sess
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, tmpl, data)
}

func (h *PageHandler) Home(c *gin.Context)     { h.render(c, "index.tmpl", "Home", nil) }
func (h *PageHandler) Shop(c *gin.Context)     { h.render(c, "shop.tmpl", "Shop", nil) }
func (h *PageHandler) Cart(c *gin.Context)     { h.render(c, "cart.tmpl", "Cart", nil) }
func (h *PageHandler) Checkout(c *gin.Context) { h.render(c, "checkout.tmpl", "Checkout", nil) }
func (h *PageHandler) Login(c *gin.Context)    { h.render(c, "login.tmpl", "Login", nil) }
func (h *PageHandler) Register(c *gin.Context) { h.render(c, "register.tmpl", "Register", nil) }

func (h *PageHandler) Product(c *gin.Context) {
	h.render(c, "product.tmpl", "Product", gin.H{"productId": c.Param("id")})
}

func (h *PageHandler) AdminDashboard(c *gin.Context) {
	h.render(c, "admin_dashboard.tmpl", "Admin Dashboard", nil)
}

func (h *PageHandler) AdminOrders(c *gin.Context) {
	h.render(c, "admin_orders.tmpl", "Order Management", nil)
}

func (h *PageHandler) AdminProducts(c *gin.Context) {
	h.render(c, "admin_products.tmpl", "Product Management", nil)
}
