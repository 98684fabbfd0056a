package controllers

import (
	"net/http"

	"github.com/Kariqs/agroxhub-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegionController struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewRegionController(db *gorm.DB, log *zap.Logger) *RegionController {
	return &RegionController{db: db, log: log}
}

func (c *RegionController) GetRegions(ctx *gin.Context) {
	var regions []models.Region
	if err := c.db.Order("name").Find(&regions).Error; err != nil {
		c.log.Error("Failed to fetch regions", zap.Error(err))
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch regions")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  true,
		"message": "Regions fetched successfully",
		"data":    regions,
	})
}
