package routes

import (
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/gin-gonic/gin"
)

func LogisticsRoutes(router *gin.RouterGroup, c *controllers.LogisticsController) {
	orders := router.Group("/orders")
	{
		orders.GET("", c.GetOrders)
		orders.GET("/:groupId", c.GetOrder)
		orders.PATCH("/:groupId", c.SetDate)
		orders.PATCH("/:groupId/transit", c.StartTransit)
		orders.PATCH("/:groupId/complete", c.CompleteOrder)
		orders.PATCH("/:groupId/return", c.ReturnOrder)
	}
}
