package rest

import (
	"net/http"
	"os"

	"mechoci-be/internal/category"
	"mechoci-be/internal/middleware"
	"mechoci-be/internal/order"
	"mechoci-be/internal/product"
	"mechoci-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Users      user.Service
	Products   product.Service
	Categories category.Service
	Orders     order.Service
}

func NewRouter(svc Services) *gin.Engine {
	if os.Getenv("GIN_MODE") == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	limiter := middleware.NewRateLimiter()
	// OptionalAuth runs before the limiter so authenticated callers are
	// limited per user rather than per IP.
	r.Use(middleware.Logging(), gin.Recovery(), middleware.OptionalAuth(), limiter.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := NewAuthHandler(svc.Users)
	userHandler := NewUserHandler(svc.Users)
	productHandler := NewProductHandler(svc.Products)
	categoryHandler := NewCategoryHandler(svc.Categories)
	orderHandler := NewOrderHandler(svc.Orders)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	users := api.Group("/users", middleware.Auth())
	{
		users.GET("/profile", userHandler.Profile)
		users.PATCH("/profile", userHandler.UpdateProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)

		admin := products.Group("", middleware.Auth(), middleware.AdminOnly())
		admin.POST("", productHandler.Create)
		admin.PATCH("/:id", productHandler.Update)
		admin.DELETE("/:id", productHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/:id", categoryHandler.Get)

		admin := categories.Group("", middleware.Auth(), middleware.AdminOnly())
		admin.POST("", categoryHandler.Create)
		admin.PATCH("/:id", categoryHandler.Update)
		admin.PATCH("/:id/status", categoryHandler.SetStatus)
	}

	orders := api.Group("/orders", middleware.Auth())
	{
		orders.POST("", orderHandler.Create)
		orders.GET("/my-orders", orderHandler.MyOrders)
		orders.GET("/:id", orderHandler.Get)

		admin := orders.Group("", middleware.AdminOnly())
		admin.GET("", orderHandler.ListAll)
		admin.PATCH("/:id/status", orderHandler.UpdateStatus)
	}

	return r
}
