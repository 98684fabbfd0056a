package models

import "gorm.io/gorm"

type LogisticsProvider struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Avatar  string `json:"avatar"`
	Address string `json:"address"`
}

// LogisticsProviderRegion records that a provider operates in a region.
type LogisticsProviderRegion struct {
	gorm.Model
	LogisticsProviderID uint `json:"logisticsProviderId" gorm:"index"`
	RegionID            uint `json:"regionId" gorm:"index"`
}

// LogisticsProviderCategory is the unit cost a provider charges per unit of a product category.
type LogisticsProviderCategory struct {
	gorm.Model
	LogisticsProviderID uint    `json:"logisticsProviderId" gorm:"index"`
	CategoryID          uint    `json:"categoryId" gorm:"index"`
	UnitCost            float64 `json:"unitCost"`
}
