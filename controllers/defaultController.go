package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to AgroXHub API. The following are the endpoints for this API:

CART
- POST "/cart" - Add a product to the cart
- GET "/cart" - Get the cart

CHECKOUT
- POST "/checkout" - Create an order from the cart
- PATCH "/checkout" - Increment, decrement or delete an order item
- GET "/checkout/:orderNumber" - Get a pending order
- GET "/checkout/:groupId/providers" - List logistics providers for an order group

ORDER
- GET "/order" - Get orders for the signed in buyer

PAYMENT
- POST "/pay" - Initiate payment for an order
- POST "/pay/verify" - Verify a payment

LOGISTICS
- GET "/logistics/orders" - Get assigned orders
- GET "/logistics/orders/:groupId" - Get an assigned order
- PATCH "/logistics/orders/:groupId" - Set pickup or delivery date
- PATCH "/logistics/orders/:groupId/transit" - Start transit
- PATCH "/logistics/orders/:groupId/complete" - Complete delivery
- PATCH "/logistics/orders/:groupId/return" - Return an order

REGION
- GET "/region" - Get all regions`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
