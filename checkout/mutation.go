package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/agroxhub-api/logistics"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemAction string

const (
	ActionIncrement ItemAction = "increment"
	ActionDecrement ItemAction = "decrement"
	ActionDelete    ItemAction = "delete"
)

func ParseItemAction(s string) (ItemAction, error) {
	switch a := ItemAction(s); a {
	case ActionIncrement, ActionDecrement, ActionDelete:
		return a, nil
	default:
		return "", utils.NewValidationError("Unknown update type provided")
	}
}

// UpdateOrderItem applies one quantity change or deletion to an unpaid order and settles
// the owning group's logistics cost and the order totals in the same transaction.
// Removing the last item of a group removes the group, and removing the last group removes the order.
func (s *Service) UpdateOrderItem(ctx context.Context, requesterID, itemID uint, action ItemAction) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var probe models.OrderItem
		if err := tx.Select("id", "order_id").First(&probe, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Product not in order")
			}
			return err
		}

		// Serialize mutations on the same order.
		var order models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, probe.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Order not found")
			}
			return err
		}

		if order.UserID != requesterID {
			return utils.NewUnauthorizedError("You are not allowed to modify this order")
		}
		if order.PaymentStatus != models.PaymentPending {
			return utils.NewUnauthorizedError("Order can no longer be modified")
		}

		var item models.OrderItem
		if err := tx.Preload("Product").First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFoundError("Product not in order")
			}
			return err
		}

		var group models.OrderGroup
		if err := tx.First(&group, item.OrderGroupID).Error; err != nil {
			return fmt.Errorf("load order group: %w", err)
		}

		oldQty := item.Quantity
		newQty, err := nextQuantity(oldQty, action)
		if err != nil {
			return err
		}

		if action == ActionDelete {
			if err := tx.Unscoped().Delete(&item).Error; err != nil {
				return fmt.Errorf("delete order item: %w", err)
			}
		} else {
			unitPrice := item.Product.UnitPrice
			err := tx.Model(&models.OrderItem{}).Where("id = ?", item.ID).Updates(map[string]any{
				"quantity":    newQty,
				"unit_price":  unitPrice,
				"total_price": unitPrice * float64(newQty),
			}).Error
			if err != nil {
				return fmt.Errorf("update order item: %w", err)
			}
		}

		var remaining int64
		if err := tx.Model(&models.OrderItem{}).Where("order_group_id = ?", group.ID).Count(&remaining).Error; err != nil {
			return fmt.Errorf("count group items: %w", err)
		}

		if remaining == 0 {
			if err := tx.Unscoped().Delete(&group).Error; err != nil {
				return fmt.Errorf("delete order group: %w", err)
			}

			var groups int64
			if err := tx.Model(&models.OrderGroup{}).Where("order_id = ?", order.ID).Count(&groups).Error; err != nil {
				return fmt.Errorf("count order groups: %w", err)
			}
			if groups == 0 {
				if err := tx.Unscoped().Delete(&order).Error; err != nil {
					return fmt.Errorf("delete order: %w", err)
				}
				s.logger.Info("Order removed after last item deleted", zap.Uint("orderId", order.ID))
				return nil
			}
		} else if group.LogisticsProviderID != nil {
			unitCost, err := logistics.NewGormDirectory(tx).UnitCost(ctx, *group.LogisticsProviderID, item.Product.CategoryID)
			if err != nil {
				return fmt.Errorf("load unit cost: %w", err)
			}

			cost := logistics.AdjustGroupCost(group.LogisticsCost, unitCost, oldQty, newQty)
			if err := tx.Model(&group).Update("logistics_cost", cost).Error; err != nil {
				return fmt.Errorf("update group cost: %w", err)
			}
		}

		_, err = refreshTotals(tx, order.ID)
		return err
	})
	if err != nil {
		if utils.IsAppError(err) {
			return err
		}
		return utils.NewServiceError("Unable to update product", err)
	}
	return nil
}

func nextQuantity(current int, action ItemAction) (int, error) {
	switch action {
	case ActionIncrement:
		if current >= MaxItemQuantity {
			return 0, utils.NewValidationError(fmt.Sprintf("Product quantity cannot exceed %d", MaxItemQuantity))
		}
		return current + 1, nil
	case ActionDecrement:
		if current <= MinItemQuantity {
			return 0, utils.NewValidationError(fmt.Sprintf("Product quantity cannot be less than %d", MinItemQuantity))
		}
		return current - 1, nil
	case ActionDelete:
		return 0, nil
	default:
		return 0, utils.NewValidationError("Unknown update type provided")
	}
}
