package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/notifications"
	"github.com/Kariqs/agroxhub-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DateKind string

const (
	DatePickup   DateKind = "pickup"
	DateDelivery DateKind = "delivery"
)

func ParseDateKind(s string) (DateKind, error) {
	switch k := DateKind(s); k {
	case DatePickup, DateDelivery:
		return k, nil
	default:
		return "", utils.NewValidationError("Date type must be pickup or delivery")
	}
}

// Service moves paid order groups through pending, in_transit, delivered and rejected
// on behalf of the assigned logistics provider.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, now: time.Now}
}

func (s *Service) ListGroups(ctx context.Context, providerID uint, status string) ([]models.OrderGroup, error) {
	q := s.db.WithContext(ctx).
		Select("order_groups.*").
		Joins("JOIN orders ON orders.id = order_groups.order_id AND orders.deleted_at IS NULL").
		Where("order_groups.logistics_provider_id = ? AND orders.payment_status = ?", providerID, models.PaymentPaid)

	if status != "" {
		q = q.Where("order_groups.status = ?", status)
	}

	var groups []models.OrderGroup
	err := q.Preload("Order").
		Preload("Seller").
		Preload("OrderItems.Product").
		Order("order_groups.created_at desc").
		Find(&groups).Error
	if err != nil {
		return nil, utils.NewServiceError("Unable to fetch orders", err)
	}
	return groups, nil
}

func (s *Service) GetGroup(ctx context.Context, providerID, groupID uint) (*models.OrderGroup, error) {
	group, err := loadGroup(s.db.WithContext(ctx), providerID, groupID, false)
	if err != nil {
		return nil, wrap(err, "Unable to fetch order")
	}
	return group, nil
}

// StartTransit moves a pending group to in_transit and tells the buyer.
func (s *Service) StartTransit(ctx context.Context, providerID, groupID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, providerID, groupID, true)
		if err != nil {
			return err
		}
		if group.Status != models.GroupPending {
			return utils.NewUnauthorizedError("Only pending orders can be moved to transit")
		}

		if err := tx.Model(&models.OrderGroup{}).Where("id = ?", group.ID).Update("status", models.GroupInTransit).Error; err != nil {
			return fmt.Errorf("update group status: %w", err)
		}

		var providerName string
		if group.LogisticsProvider != nil {
			providerName = group.LogisticsProvider.Name
		}
		return notifications.Record(tx, notifications.OrderInTransit{
			To:           notifications.ToUser(group.Order.UserID),
			OrderID:      group.OrderID,
			OrderGroupID: group.ID,
			OrderNumber:  group.Order.OrderNumber,
			ProviderName: providerName,
		})
	})
	if err != nil {
		return wrap(err, "Unable to start transit")
	}

	s.logger.Info("Order group in transit", zap.Uint("groupId", groupID), zap.Uint("providerId", providerID))
	return nil
}

// Complete marks an in-transit group delivered once the buyer's completion code matches.
// A group that is already delivered is rejected without any change.
func (s *Service) Complete(ctx context.Context, providerID, groupID uint, code string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, providerID, groupID, true)
		if err != nil {
			return err
		}

		if group.Status == models.GroupDelivered {
			return utils.NewUnauthorizedError("Order already delivered")
		}
		if group.Status != models.GroupInTransit {
			return utils.NewUnauthorizedError("Please transit order first before completing delivery")
		}
		if code == "" || group.OrderCompletionCode != code {
			return utils.NewValidationError("Order completion code incorrect")
		}

		now := s.now()
		updates := map[string]any{"status": models.GroupDelivered}
		if group.DeliveryDate == nil {
			updates["delivery_date"] = now
		}
		if err := tx.Model(&models.OrderGroup{}).Where("id = ?", group.ID).Updates(updates).Error; err != nil {
			return fmt.Errorf("update group status: %w", err)
		}

		notices := []notifications.Notice{notifications.OrderDelivery{
			To:           notifications.ToUser(group.Order.UserID),
			OrderID:      group.OrderID,
			OrderGroupID: group.ID,
			OrderNumber:  group.Order.OrderNumber,
			DeliveryDate: &now,
			Delivered:    true,
		}}

		productIDs := make([]uint, 0, len(group.OrderItems))
		for _, item := range group.OrderItems {
			err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("purchases", gorm.Expr("purchases + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("update product purchases: %w", err)
			}

			productID := item.ProductID
			productIDs = append(productIDs, productID)
			notices = append(notices, notifications.OrderDelivery{
				To:           notifications.ToUser(group.SellerID),
				OrderID:      group.OrderID,
				OrderGroupID: group.ID,
				OrderNumber:  group.Order.OrderNumber,
				Delivered:    true,
				ProductID:    &productID,
				ProductName:  item.Product.Name,
				Quantity:     item.Quantity,
			})
		}

		var lowStock []models.Product
		err = tx.Where("id IN ? AND quantity <= low_stock_alert_level", productIDs).
			Order("id").
			Find(&lowStock).Error
		if err != nil {
			return fmt.Errorf("check stock levels: %w", err)
		}
		for _, p := range lowStock {
			notices = append(notices, notifications.OutOfStock{
				To:          notifications.ToUser(p.SellerID),
				ProductID:   p.ID,
				ProductName: p.Name,
				Unit:        p.Unit,
				Remaining:   p.Quantity,
			})
		}

		if err := notifications.Record(tx, notices...); err != nil {
			return err
		}
		return settleOrder(tx, group.OrderID)
	})
	if err != nil {
		return wrap(err, "Unable to complete order")
	}

	s.logger.Info("Order group delivered", zap.Uint("groupId", groupID), zap.Uint("providerId", providerID))
	return nil
}

// Return rejects a group that has not been delivered and records the buyer's reason.
func (s *Service) Return(ctx context.Context, providerID, groupID uint, reason string) error {
	if reason == "" {
		return utils.NewValidationError("Return reason is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, providerID, groupID, true)
		if err != nil {
			return err
		}
		if group.Status.Terminal() {
			return utils.NewUnauthorizedError("Order can no longer be returned")
		}

		if err := tx.Model(&models.OrderGroup{}).Where("id = ?", group.ID).Update("status", models.GroupRejected).Error; err != nil {
			return fmt.Errorf("update group status: %w", err)
		}

		returned := models.ReturnedOrder{
			OrderGroupID: group.ID,
			BuyerID:      group.Order.UserID,
			Reason:       reason,
		}
		if err := tx.Create(&returned).Error; err != nil {
			return fmt.Errorf("record return: %w", err)
		}

		if err := notifications.Record(tx, notifications.OrderReturn{
			To:           notifications.ToUser(group.SellerID),
			OrderID:      group.OrderID,
			OrderGroupID: group.ID,
			OrderNumber:  group.Order.OrderNumber,
			Reason:       reason,
		}); err != nil {
			return err
		}
		return settleOrder(tx, group.OrderID)
	})
	if err != nil {
		return wrap(err, "Unable to return order")
	}

	s.logger.Info("Order group returned", zap.Uint("groupId", groupID), zap.Uint("providerId", providerID))
	return nil
}

// SetDate stores a pickup or delivery date. Pickup notifies the seller once per item,
// delivery notifies the buyer.
func (s *Service) SetDate(ctx context.Context, providerID, groupID uint, kind DateKind, date time.Time) error {
	if date.IsZero() {
		return utils.NewValidationError("Date is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := loadGroup(tx, providerID, groupID, true)
		if err != nil {
			return err
		}
		if group.Status.Terminal() {
			return utils.NewUnauthorizedError("Order has already been closed")
		}

		var notices []notifications.Notice
		switch kind {
		case DatePickup:
			if err := tx.Model(&models.OrderGroup{}).Where("id = ?", group.ID).Update("pickup_date", date).Error; err != nil {
				return fmt.Errorf("update pickup date: %w", err)
			}
			for _, item := range group.OrderItems {
				notices = append(notices, notifications.OrderPickup{
					To:           notifications.ToUser(group.SellerID),
					OrderID:      group.OrderID,
					OrderGroupID: group.ID,
					ProductID:    item.ProductID,
					ProductName:  item.Product.Name,
					Quantity:     item.Quantity,
					PickupDate:   date,
				})
			}
		case DateDelivery:
			if err := tx.Model(&models.OrderGroup{}).Where("id = ?", group.ID).Update("delivery_date", date).Error; err != nil {
				return fmt.Errorf("update delivery date: %w", err)
			}
			notices = append(notices, notifications.OrderDelivery{
				To:           notifications.ToUser(group.Order.UserID),
				OrderID:      group.OrderID,
				OrderGroupID: group.ID,
				OrderNumber:  group.Order.OrderNumber,
				DeliveryDate: &date,
			})
		default:
			return utils.NewValidationError("Date type must be pickup or delivery")
		}

		return notifications.Record(tx, notices...)
	})
	if err != nil {
		return wrap(err, "Unable to update order")
	}
	return nil
}

func loadGroup(db *gorm.DB, providerID, groupID uint, lock bool) (*models.OrderGroup, error) {
	q := db.Preload("Order").
		Preload("LogisticsProvider").
		Preload("OrderItems", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("OrderItems.Product")
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var group models.OrderGroup
	if err := q.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, err
	}

	if group.LogisticsProviderID == nil || *group.LogisticsProviderID != providerID {
		return nil, utils.NewUnauthorizedError("Order is not assigned to you")
	}
	if group.Order == nil || group.Order.PaymentStatus != models.PaymentPaid {
		return nil, utils.NewUnauthorizedError("Order has not been paid for")
	}
	return &group, nil
}

// settleOrder completes the order once every group has reached a terminal status.
func settleOrder(tx *gorm.DB, orderID uint) error {
	var open int64
	err := tx.Model(&models.OrderGroup{}).
		Where("order_id = ? AND status IN ?", orderID, []models.GroupStatus{models.GroupPending, models.GroupInTransit}).
		Count(&open).Error
	if err != nil {
		return fmt.Errorf("count open groups: %w", err)
	}
	if open > 0 {
		return nil
	}
	return tx.Model(&models.Order{}).Where("id = ?", orderID).Update("status", models.OrderCompleted).Error
}

func wrap(err error, message string) error {
	if utils.IsAppError(err) {
		return err
	}
	return utils.NewServiceError(message, err)
}
