package routes

import (
	"github.com/Kariqs/agroxhub-api/controllers"
	"github.com/gin-gonic/gin"
)

func CartRoutes(router *gin.RouterGroup, c *controllers.CartController) {
	router.POST("/cart", c.CreateCartItem)
	router.GET("/cart", c.GetCart)
}
