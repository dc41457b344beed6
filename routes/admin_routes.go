package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nikhil-742/ShopNest/controllers"
	"github.com/nikhil-742/ShopNest/middleware"
)

// initAdminRoutes wires the admin surface
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		orders := protected.Group("/orders")
		{
			orders.GET("", controllers.AdminListOrders)
			orders.PUT("/:id/verify-return", controllers.AdminVerifyReturn)
			orders.PUT("/:id/verify-return-no-refund", controllers.AdminVerifyReturnWithoutRefund)
			orders.PUT("/:id/reject-return", controllers.AdminRejectReturn)
			orders.PUT("/:id/items/:item_id", controllers.AdminUpdateOrderItem)
		}

		promotions := protected.Group("/promotions")
		{
			promotions.POST("", controllers.AdminCreatePromotion)
			promotions.GET("", controllers.AdminListPromotions)
			promotions.PUT("/:id", controllers.AdminUpdatePromotion)
			promotions.DELETE("/:id", controllers.AdminDeletePromotion)
		}

		offers := protected.Group("/offers")
		{
			offers.POST("", controllers.AdminCreateOffer)
			offers.GET("", controllers.AdminListOffers)
			offers.PUT("/:id", controllers.AdminUpdateOffer)
			offers.DELETE("/:id", controllers.AdminDeleteOffer)
		}

		protected.PATCH("/variants/:id/stock", controllers.AdminUpdateVariantStock)
		protected.POST("/wallets/credit", controllers.AdminCreditWallet)
		protected.POST("/wallets/debit", controllers.AdminDebitWallet)
	}
}
