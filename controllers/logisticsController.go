package controllers

import (
	"net/http"
	"time"

	"github.com/Kariqs/agroxhub-api/fulfillment"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LogisticsController struct {
	fulfillment *fulfillment.Service
	log         *zap.Logger
}

func NewLogisticsController(svc *fulfillment.Service, log *zap.Logger) *LogisticsController {
	return &LogisticsController{fulfillment: svc, log: log}
}

type setDateRequest struct {
	Type string    `json:"type" binding:"required,oneof=pickup delivery"`
	Date time.Time `json:"date" binding:"required"`
}

type completeOrderRequest struct {
	Code string `json:"code" binding:"required"`
}

type returnOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (c *LogisticsController) GetOrders(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}

	status := ctx.Query("status")
	switch models.GroupStatus(status) {
	case "", models.GroupPending, models.GroupInTransit, models.GroupDelivered, models.GroupRejected:
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "Unknown order status")
		return
	}

	groups, err := c.fulfillment.ListGroups(ctx.Request.Context(), providerID, status)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Orders fetched successfully",
		"data":    groups,
	})
}

func (c *LogisticsController) GetOrder(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	group, err := c.fulfillment.GetGroup(ctx.Request.Context(), providerID, groupID)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order fetched successfully",
		"data":    group,
	})
}

func (c *LogisticsController) SetDate(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	var req setDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	kind, err := fulfillment.ParseDateKind(req.Type)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	if err := c.fulfillment.SetDate(ctx.Request.Context(), providerID, groupID, kind, req.Date); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order " + req.Type + " date updated successfully",
	})
}

func (c *LogisticsController) StartTransit(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	if err := c.fulfillment.StartTransit(ctx.Request.Context(), providerID, groupID); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order transit started successfully",
	})
}

func (c *LogisticsController) CompleteOrder(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	var req completeOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	if err := c.fulfillment.Complete(ctx.Request.Context(), providerID, groupID, req.Code); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order delivered successfully",
	})
}

func (c *LogisticsController) ReturnOrder(ctx *gin.Context) {
	providerID, ok := currentLogisticsID(ctx)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(ctx, "groupId")
	if !ok {
		return
	}

	var req returnOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondWithBindError(ctx, err)
		return
	}

	if err := c.fulfillment.Return(ctx.Request.Context(), providerID, groupID, req.Reason); err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Order returned successfully",
	})
}
