package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/uday8116/swift-basket/internal/handlers"
	"github.com/uday8116/swift-basket/internal/middleware/auth"
	"github.com/uday8116/swift-basket/internal/models"
)

type Deps struct {
	DB                 *gorm.DB
	JWTSecret          []byte
	ProductHandler     *handlers.ProductHandler
	OrderHandler       *handlers.OrderHandler
	UserHandler        *handlers.UserHandler
	HomeContentHandler *handlers.HomeContentHandler
	UploadHandler      *handlers.UploadHandler
	PaymentHandler     *handlers.PaymentHandler
	SearchHandler      *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/uploads", d.UploadHandler.Dir)

	requireAuth := auth.Require(d.JWTSecret)
	optionalAuth := auth.Optional(d.JWTSecret)
	sellers := auth.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superAdmin := auth.RequireRoles(models.RoleSuperAdmin)

	products := e.Group("/api/products")
	products.GET("", d.ProductHandler.GetProducts, optionalAuth)
	products.GET("/filters", d.ProductHandler.GetFilters)
	products.GET("/search", d.SearchHandler.Search)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.POST("", d.ProductHandler.CreateProduct, requireAuth, sellers)
	products.PUT("/:id", d.ProductHandler.UpdateProduct, requireAuth, sellers)
	products.DELETE("/:id", d.ProductHandler.DeleteProduct, requireAuth, sellers)

	orders := e.Group("/api/orders", requireAuth)
	orders.POST("", d.OrderHandler.PlaceOrder)
	orders.GET("", d.OrderHandler.ListOrders, sellers)
	orders.GET("/myorders", d.OrderHandler.MyOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PUT("/:id/pay", d.OrderHandler.Pay)
	orders.PUT("/:id/deliver", d.OrderHandler.Deliver, sellers)

	users := e.Group("/api/users")
	users.POST("/login", d.UserHandler.Login)
	users.POST("", d.UserHandler.Register)
	users.GET("/profile", d.UserHandler.GetProfile, requireAuth)
	users.PUT("/profile", d.UserHandler.UpdateProfile, requireAuth)
	users.GET("", d.UserHandler.ListUsers, requireAuth, superAdmin)
	users.GET("/:id", d.UserHandler.GetUser, requireAuth, superAdmin)
	users.PUT("/:id", d.UserHandler.UpdateUser, requireAuth, superAdmin)
	users.DELETE("/:id", d.UserHandler.DeleteUser, requireAuth, superAdmin)

	home := e.Group("/api/home-content")
	home.GET("", d.HomeContentHandler.ListHomeContent)
	home.GET("/:id", d.HomeContentHandler.GetHomeContent)
	home.POST("", d.HomeContentHandler.CreateHomeContent, requireAuth, sellers)
	home.PUT("/reorder/batch", d.HomeContentHandler.ReorderHomeContent, requireAuth, sellers)
	home.PUT("/:id", d.HomeContentHandler.UpdateHomeContent, requireAuth, sellers)
	home.DELETE("/:id", d.HomeContentHandler.DeleteHomeContent, requireAuth, sellers)

	upload := e.Group("/api/upload", requireAuth, sellers)
	upload.POST("", d.UploadHandler.UploadImage)
	upload.POST("/multiple", d.UploadHandler.UploadImages)

	e.POST("/api/payment/create-payment-intent", d.PaymentHandler.CreatePaymentIntent, requireAuth)
}
