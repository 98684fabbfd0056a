package routes

import (
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(router *gin.RouterGroup, c *controllers.OrderController) {
	router.GET("/order", c.GetOrders)
}

// CheckoutRoutes shares one parameter: an order number for reads, a group id for provider listing.
func CheckoutRoutes(router *gin.RouterGroup, c *controllers.CheckoutController) {
	checkout := router.Group("/checkout")
	{
		checkout.POST("", c.CreateOrder)
		checkout.PATCH("", c.UpdateOrderItem)
		checkout.GET("/:id", c.GetOrder)
		checkout.GET("/:id/providers", c.GetGroupProviders)
	}
}

func PaymentRoutes(router *gin.RouterGroup, c *controllers.PaymentController) {
	router.POST("/pay", c.InitiatePayment)
	router.POST("/pay/verify", c.VerifyPayment)
}
