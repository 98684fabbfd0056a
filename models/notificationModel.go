package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationTargetUser      = "user"
	NotificationTargetLogistics = "logistics"
)

type Notification struct {
	gorm.Model
	Type                string         `json:"type" gorm:"index"`
	Target              string         `json:"target"`
	UserID              *uint          `json:"userId" gorm:"index"`
	LogisticsProviderID *uint          `json:"logisticsProviderId" gorm:"index"`
	OrderID             *uint          `json:"orderId"`
	OrderGroupID        *uint          `json:"orderGroupId"`
	ProductID           *uint          `json:"productId"`
	Subject             string         `json:"subject"`
	Summary             string         `json:"summary"`
	Details             datatypes.JSON `json:"details"`
	Read                bool           `json:"read"`
}
