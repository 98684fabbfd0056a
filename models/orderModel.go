package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

type GroupStatus string

const (
	GroupPending   GroupStatus = "pending"
	GroupInTransit GroupStatus = "in_transit"
	GroupDelivered GroupStatus = "delivered"
	GroupRejected  GroupStatus = "rejected"
)

// Terminal reports whether no further fulfillment transition is allowed.
func (s GroupStatus) Terminal() bool {
	return s == GroupDelivered || s == GroupRejected
}

type Order struct {
	gorm.Model
	UserID           uint          `json:"userId" gorm:"index"`
	User             User          `json:"-" gorm:"foreignKey:UserID"`
	OrderNumber      string        `json:"orderNumber" gorm:"index"`
	DeliveryAddress  string        `json:"deliveryAddress"`
	DeliveryRegionID uint          `json:"deliveryRegionId"`
	DeliveryRegion   Region        `json:"deliveryRegion" gorm:"foreignKey:DeliveryRegionID"`
	ProductsAmount   float64       `json:"productsAmount"`
	LogisticsAmount  float64       `json:"logisticsAmount"`
	VAT              float64       `json:"vat" gorm:"column:vat"`
	TotalAmount      float64       `json:"totalAmount"`
	PaymentStatus    PaymentStatus `json:"paymentStatus" gorm:"default:pending"`
	Status           OrderStatus   `json:"status" gorm:"default:pending"`
	LogisticsNote    string        `json:"logisticsNote"`
	AccessCode       string        `json:"-"`
	ReferenceCode    string        `json:"referenceCode" gorm:"index"`
	OrderGroups      []OrderGroup  `json:"orderGroups" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderGroup struct {
	gorm.Model
	OrderID             uint               `json:"orderId" gorm:"index"`
	Order               *Order             `json:"-" gorm:"foreignKey:OrderID"`
	SellerID            uint               `json:"sellerId"`
	Seller              *User              `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	LogisticsProviderID *uint              `json:"logisticsProviderId" gorm:"index"`
	LogisticsProvider   *LogisticsProvider `json:"logisticsProvider,omitempty" gorm:"foreignKey:LogisticsProviderID"`
	LogisticsCost       float64            `json:"logisticsCost"`
	DistanceKm          float64            `json:"distanceKm"`
	OrderCompletionCode string             `json:"-"`
	PickupDate          *time.Time         `json:"pickupDate"`
	DeliveryDate        *time.Time         `json:"deliveryDate"`
	Status              GroupStatus        `json:"status" gorm:"default:pending"`
	OrderItems          []OrderItem        `json:"orderItems" gorm:"foreignKey:OrderGroupID;constraint:OnDelete:CASCADE"`
}

type OrderItem struct {
	gorm.Model
	OrderID      uint    `json:"orderId" gorm:"index"`
	OrderGroupID uint    `json:"orderGroupId" gorm:"index"`
	ProductID    uint    `json:"productId"`
	Product      Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

type ReturnedOrder struct {
	gorm.Model
	OrderGroupID uint   `json:"orderGroupId" gorm:"index"`
	BuyerID      uint   `json:"buyerId"`
	Reason       string `json:"reason"`
}
