package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name string `json:"name"`
}

type Product struct {
	gorm.Model
	Name               string   `json:"name"`
	Slug               string   `json:"slug" gorm:"index"`
	Unit               string   `json:"unit"`
	UnitPrice          float64  `json:"unitPrice"`
	Quantity           int      `json:"quantity"`
	LowStockAlertLevel int      `json:"lowStockAlertLevel"`
	Purchases          int      `json:"purchases"`
	SellerID           uint     `json:"sellerId"`
	Seller             User     `json:"-" gorm:"foreignKey:SellerID"`
	CategoryID         uint     `json:"categoryId"`
	Category           Category `json:"-" gorm:"foreignKey:CategoryID"`
}
