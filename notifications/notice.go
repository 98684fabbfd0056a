package notifications

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kariqs/agroxhub-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TypeOrderPlacement = "orderPlacement"
	TypeOrderPickup    = "orderPickup"
	TypeOrderInTransit = "orderInTransit"
	TypeOrderDelivery  = "orderDelivery"
	TypeOrderReturn    = "orderReturn"
	TypeOutOfStock     = "outOfStock"
)

// Recipient is either a marketplace user or a logistics provider.
type Recipient struct {
	target string
	id     uint
}

func ToUser(id uint) Recipient      { return Recipient{target: models.NotificationTargetUser, id: id} }
func ToLogistics(id uint) Recipient { return Recipient{target: models.NotificationTargetLogistics, id: id} }

// Notice is implemented only by the notification kinds in this package.
type Notice interface {
	Type() string
	envelope() envelope
}

type envelope struct {
	to           Recipient
	orderID      *uint
	orderGroupID *uint
	productID    *uint
	subject      string
	summary      string
	details      any
}

type OrderPlacement struct {
	To           Recipient
	OrderID      uint
	OrderGroupID uint
	OrderNumber  string
	// Set for seller notices, one per purchased product.
	ProductID   *uint
	ProductName string
	Quantity    int
}

func (OrderPlacement) Type() string { return TypeOrderPlacement }

func (n OrderPlacement) envelope() envelope {
	summary := fmt.Sprintf("Order %s has been paid for and is ready for pickup.", n.OrderNumber)
	if n.ProductID != nil {
		summary = fmt.Sprintf("You have a new order for %d x %s (order %s).", n.Quantity, n.ProductName, n.OrderNumber)
	}
	return envelope{
		to:           n.To,
		orderID:      &n.OrderID,
		orderGroupID: &n.OrderGroupID,
		productID:    n.ProductID,
		subject:      "New order placed",
		summary:      summary,
		details: struct {
			OrderNumber string `json:"orderNumber"`
			ProductName string `json:"productName,omitempty"`
			Quantity    int    `json:"quantity,omitempty"`
		}{n.OrderNumber, n.ProductName, n.Quantity},
	}
}

type OrderPickup struct {
	To           Recipient
	OrderID      uint
	OrderGroupID uint
	ProductID    uint
	ProductName  string
	Quantity     int
	PickupDate   time.Time
}

func (OrderPickup) Type() string { return TypeOrderPickup }

func (n OrderPickup) envelope() envelope {
	return envelope{
		to:           n.To,
		orderID:      &n.OrderID,
		orderGroupID: &n.OrderGroupID,
		productID:    &n.ProductID,
		subject:      "Pickup scheduled",
		summary: fmt.Sprintf("%d x %s will be picked up on %s.",
			n.Quantity, n.ProductName, n.PickupDate.Format("02 Jan 2006")),
		details: struct {
			ProductName string    `json:"productName"`
			Quantity    int       `json:"quantity"`
			PickupDate  time.Time `json:"pickupDate"`
		}{n.ProductName, n.Quantity, n.PickupDate},
	}
}

type OrderInTransit struct {
	To           Recipient
	OrderID      uint
	OrderGroupID uint
	OrderNumber  string
	ProviderName string
}

func (OrderInTransit) Type() string { return TypeOrderInTransit }

func (n OrderInTransit) envelope() envelope {
	return envelope{
		to:           n.To,
		orderID:      &n.OrderID,
		orderGroupID: &n.OrderGroupID,
		subject:      "Order in transit",
		summary:      fmt.Sprintf("Your order %s is on its way with %s.", n.OrderNumber, n.ProviderName),
		details: struct {
			OrderNumber  string `json:"orderNumber"`
			ProviderName string `json:"providerName"`
		}{n.OrderNumber, n.ProviderName},
	}
}

// OrderDelivery covers both a scheduled delivery date and a completed delivery.
type OrderDelivery struct {
	To           Recipient
	OrderID      uint
	OrderGroupID uint
	OrderNumber  string
	DeliveryDate *time.Time
	Delivered    bool
	// Set for seller notices.
	ProductID   *uint
	ProductName string
	Quantity    int
}

func (OrderDelivery) Type() string { return TypeOrderDelivery }

func (n OrderDelivery) envelope() envelope {
	subject := "Delivery scheduled"
	var summary string
	switch {
	case n.Delivered && n.ProductID != nil:
		subject = "Order delivered successfully"
		summary = fmt.Sprintf("%s has been delivered to the buyer.", n.ProductName)
	case n.Delivered:
		subject = "Order delivered successfully"
		summary = fmt.Sprintf("Your order %s has been delivered.", n.OrderNumber)
	case n.DeliveryDate != nil:
		summary = fmt.Sprintf("Your order %s will be delivered on %s.", n.OrderNumber, n.DeliveryDate.Format("02 Jan 2006"))
	default:
		summary = fmt.Sprintf("Your order %s has a delivery update.", n.OrderNumber)
	}
	return envelope{
		to:           n.To,
		orderID:      &n.OrderID,
		orderGroupID: &n.OrderGroupID,
		productID:    n.ProductID,
		subject:      subject,
		summary:      summary,
		details: struct {
			OrderNumber  string     `json:"orderNumber"`
			DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
			Delivered    bool       `json:"delivered"`
			ProductName  string     `json:"productName,omitempty"`
			Quantity     int        `json:"quantity,omitempty"`
		}{n.OrderNumber, n.DeliveryDate, n.Delivered, n.ProductName, n.Quantity},
	}
}

type OrderReturn struct {
	To           Recipient
	OrderID      uint
	OrderGroupID uint
	OrderNumber  string
	Reason       string
}

func (OrderReturn) Type() string { return TypeOrderReturn }

func (n OrderReturn) envelope() envelope {
	return envelope{
		to:           n.To,
		orderID:      &n.OrderID,
		orderGroupID: &n.OrderGroupID,
		subject:      "Order rejected",
		summary:      fmt.Sprintf("Order %s was rejected by the buyer.", n.OrderNumber),
		details: struct {
			OrderNumber string `json:"orderNumber"`
			Reason      string `json:"reason"`
		}{n.OrderNumber, n.Reason},
	}
}

type OutOfStock struct {
	To          Recipient
	ProductID   uint
	ProductName string
	Unit        string
	Remaining   int
}

func (OutOfStock) Type() string { return TypeOutOfStock }

func (n OutOfStock) envelope() envelope {
	unit := n.Unit
	if n.Remaining != 1 && unit != "" {
		unit += "s"
	}
	return envelope{
		to:        n.To,
		productID: &n.ProductID,
		subject:   "Product almost out of stock",
		summary:   fmt.Sprintf("Only %d %s of %s is left in your store. Restock now!", n.Remaining, unit, n.ProductName),
		details: struct {
			ProductName string `json:"productName"`
			Remaining   int    `json:"remaining"`
		}{n.ProductName, n.Remaining},
	}
}

// Build turns a notice into its persisted row.
func Build(n Notice) (models.Notification, error) {
	env := n.envelope()

	details, err := json.Marshal(env.details)
	if err != nil {
		return models.Notification{}, fmt.Errorf("encode %s details: %w", n.Type(), err)
	}

	row := models.Notification{
		Type:         n.Type(),
		Target:       env.to.target,
		OrderID:      env.orderID,
		OrderGroupID: env.orderGroupID,
		ProductID:    env.productID,
		Subject:      env.subject,
		Summary:      env.summary,
		Details:      datatypes.JSON(details),
	}

	id := env.to.id
	if env.to.target == models.NotificationTargetLogistics {
		row.LogisticsProviderID = &id
	} else {
		row.UserID = &id
	}
	return row, nil
}

// Record persists notices on db, which is usually the caller's transaction.
func Record(db *gorm.DB, notices ...Notice) error {
	if len(notices) == 0 {
		return nil
	}

	rows := make([]models.Notification, 0, len(notices))
	for _, n := range notices {
		row, err := Build(n)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("create notifications: %w", err)
	}
	return nil
}
