package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/controllers"
	"github.com/nikhil-742/ShopNest/middleware"
)

// initUserRoutes wires the public and customer-facing routes
func initUserRoutes(api *gin.RouterGroup) {
	// Public routes
	api.POST("/login", controllers.LoginUser)
	api.GET("/products", controllers.ListProducts)
	api.GET("/products/:id", controllers.GetProductDetails)

	// Authenticated customer routes
	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		orders := user.Group("/orders")
		{
			orders.POST("", controllers.PlaceOrder)
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrderDetails)
			orders.GET("/:id/invoice", controllers.DownloadInvoice)
			orders.PATCH("/:id/cancel", controllers.CancelOrder)
			orders.POST("/:id/return", controllers.ReturnOrder)
		}

		wallet := user.Group("/wallet")
		{
			wallet.GET("", controllers.GetWalletBalance)
			wallet.GET("/transactions", controllers.GetWalletTransactions)
			wallet.POST("/topup/initiate", controllers.InitiateWalletTopup)
			wallet.POST("/topup/verify", controllers.VerifyWalletTopup)
		}

		user.POST("/discounts/validate", controllers.ValidateDiscount)
		user.GET("/referral", controllers.GetReferral)
		user.POST("/referral/complete", controllers.CompleteReferral)
	}
}
