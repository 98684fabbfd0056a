package controllers

import (
	"net/http"

	"github.com/Kariqs/agroxhub-api/checkout"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CheckoutController struct {
	checkout *checkout.Service
	log      *zap.Logger
}

func NewCheckoutController(svc *checkout.Service, log *zap.Logger) *CheckoutController {
	return &CheckoutController{checkout: svc, log: log}
}

type createOrderRequest struct {
	CartID           uint   `json:"cartId" binding:"required"`
	DeliveryAddress  string `json:"deliveryAddress" binding:"required"`
	DeliveryRegionID uint   `json:"deliveryRegionId" binding:"required"`
	LogisticsNote    string `json:"logisticsNote"`
}

type updateOrderItemRequest struct {
	ItemID uint   `json:"itemId" binding:"required"`
	Type   string `json:"type" binding:"required"`
}

func (c *CheckoutController) CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req createOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	order, err := c.checkout.CreateOrder(ctx.Request.Context(), checkout.CreateOrderInput{
		BuyerID:          userID,
		CartID:           req.CartID,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryRegionID: req.DeliveryRegionID,
		LogisticsNote:    req.LogisticsNote,
	})
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"status":  true,
		"message": "Order created successfully",
		"data":    order,
	})
}

func (c *CheckoutController) GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	order, err := c.checkout.GetPendingOrder(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order fetched successfully",
		"data":    order,
	})
}

func (c *CheckoutController) GetGroupProviders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	quotes, err := c.checkout.GroupProviders(ctx.Request.Context(), userID, groupID)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Logistics providers fetched successfully",
		"data":    quotes,
	})
}

func (c *CheckoutController) UpdateOrderItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req updateOrderItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	action, err := checkout.ParseItemAction(req.Type)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	if err := c.checkout.UpdateOrderItem(ctx.Request.Context(), userID, req.ItemID, action); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order updated successfully",
	})
}
