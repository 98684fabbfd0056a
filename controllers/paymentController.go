package controllers

import (
	"net/http"

	"github.com/Kariqs/agroxhub-api/payments"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentController struct {
	payments *payments.Service
	log      *zap.Logger
}

func NewPaymentController(svc *payments.Service, log *zap.Logger) *PaymentController {
	return &PaymentController{payments: svc, log: log}
}

type initiatePaymentRequest struct {
	OrderNumber string `json:"orderNumber" binding:"required"`
}

type verifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
}

func (c *PaymentController) InitiatePayment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req initiatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	started, err := c.payments.Initiate(ctx.Request.Context(), userID, req.OrderNumber)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Payment initiated. Redirect user to payment.",
		"data":    started,
	})
}

func (c *PaymentController) VerifyPayment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req verifyPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	order, err := c.payments.Verify(ctx.Request.Context(), userID, req.Reference)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Payment successful",
		"data": gin.H{
			"orderNumber":   order.OrderNumber,
			"paymentStatus": order.PaymentStatus,
		},
	})
}
