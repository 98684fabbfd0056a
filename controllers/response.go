package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/agroxhub-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgInvalidInput        = "Invalid request body"
	msgInternalServerError = "Internal server error"
	msgMissingIdentity     = "Authentication required"
)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"status": false, "message": message})
}

// respondWithError maps a service error onto its HTTP status. Causes are logged, never returned.
func respondWithError(ctx *gin.Context, log *zap.Logger, err error) {
	kind := utils.KindOf(err)
	if kind == utils.KindService {
		log.Error("Request failed",
			zap.String("path", ctx.FullPath()),
			zap.String("requestId", ctx.GetString("requestId")),
			zap.Error(err),
		)
	}
	sendErrorResponse(ctx, kind.HTTPStatus(), utils.PublicMessage(err))
}

func respondWithBindError(ctx *gin.Context, err error) {
	sendJSONResponse(ctx, http.StatusBadRequest, gin.H{
		"status":  false,
		"message": msgInvalidInput,
		"errors":  utils.FormatValidationError(err),
	})
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	id := ctx.GetUint("userId")
	if id == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgMissingIdentity)
		return 0, false
	}
	return id, true
}

func currentLogisticsID(ctx *gin.Context) (uint, bool) {
	id := ctx.GetUint("logisticsId")
	if id == 0 {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgMissingIdentity)
		return 0, false
	}
	return id, true
}
