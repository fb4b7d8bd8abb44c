package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storekit/storefront-api/internal/adapter/http/middleware"
	"github.com/storekit/storefront-api/internal/logging"
)

func NewRouter(
	products *ProductHandler,
	orders *OrderHandler,
	customers *CustomerHandler,
	authh *AuthHandler,
	pages *PageHandler,
	auth *middleware.Auth,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())
	r.Use(middleware.Logging(logging.New("http")))
	r.Use(auth.Load())

	r.LoadHTMLGlob("web/templates/*.tmpl")
	r.Static("/static", "./web/static")

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		p := api.Group("/products")
		{
			p.GET("", products.List)
			p.GET("/:id", products.Get)
			p.POST("", auth.RequireAdmin(), products.Create)
			p.PUT("/:id", auth.RequireAdmin(), products.Update)
			p.DELETE("/:id", auth.RequireAdmin(), products.Delete)
		}

		o := api.Group("/orders")
		{
			o.POST("", orders.Create) // public checkout
			o.GET("", auth.RequireSession(), orders.List)
			o.GET("/stats/overview", auth.RequireSession(), orders.Stats)
			o.GET("/:id", auth.RequireSession(), orders.Get)
			o.PUT("/:id/status", auth.RequireAdmin(), orders.UpdateStatus)
		}

		cu := api.Group("/customers", auth.RequireSession())
		{
			cu.GET("", customers.List)
			cu.GET("/:id", customers.Get)
			cu.GET("/:id/stats", customers.Stats)
			cu.PUT("/:id", auth.RequireAdmin(), customers.Update)
		}

		a := api.Group("/auth")
		{
			a.POST("/register", authh.Register)
			a.POST("/login", authh.Login)
			a.POST("/logout", authh.Logout)
			a.GET("/me", authh.Me)
		}
	}

	r.GET("/", pages.Home)
	r.GET("/shop", pages.Shop)
	r.GET("/product/:id", pages.Product)
	r.GET("/cart", pages.Cart)
	r.GET("/checkout", pages.Checkout)
	r.GET("/login", pages.Login)
	r.GET("/register", pages.Register)

	admin := r.Group("/admin", auth.RequireAdminPage())
	{
		admin.GET("", pages.AdminDashboard)
		admin.GET("/orders", pages.AdminOrders)
		admin.GET("/products", pages.AdminProducts)
	}

	return r
}
