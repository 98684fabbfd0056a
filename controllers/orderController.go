package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/Kariqs/agroxhub-api/checkout"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderController struct {
	checkout *checkout.Service
	log      *zap.Logger
}

func NewOrderController(svc *checkout.Service, log *zap.Logger) *OrderController {
	return &OrderController{checkout: svc, log: log}
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "15"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 15
	}

	orders, count, err := c.checkout.ListOrders(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		respondWithError(ctx, c.log, err)
		return
	}

	previousPage := page - 1
	nextPage := page + 1
	totalPages := math.Ceil(float64(count) / float64(limit))

	ctx.JSON(http.StatusOK, gin.H{
		"status": true,
		"orders": orders,
		"metadata": gin.H{
			"total":        count,
			"currentPage":  page,
			"limit":        limit,
			"hasPrevPage":  previousPage > 0,
			"hasNextPage":  int(totalPages) > page,
			"previousPage": previousPage,
			"nextPage":     nextPage,
		},
	})
}
