package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/notifications"
	"github.com/Kariqs/agroxhub-api/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db      *gorm.DB
	gateway Gateway
	logger  *zap.Logger
}

func NewService(db *gorm.DB, gateway Gateway, logger *zap.Logger) *Service {
	return &Service{db: db, gateway: gateway, logger: logger}
}

// Initiate opens a gateway transaction for the buyer's order, charged in minor units.
func (s *Service) Initiate(ctx context.Context, buyerID uint, orderNumber string) (Initialization, error) {
	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.Preload("User").
		Where("order_number = ? AND user_id = ?", orderNumber, buyerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Initialization{}, utils.NewNotFoundError("Order not found")
		}
		return Initialization{}, utils.NewServiceError("Unable to load order", err)
	}
	if order.PaymentStatus == models.PaymentPaid {
		return Initialization{}, utils.NewUnauthorizedError("Order has already been paid for")
	}
	if order.User.Email == "" {
		return Initialization{}, utils.NewValidationError("An email address is required to pay")
	}

	amount := int64(math.Round(order.TotalAmount * 100))
	started, err := s.gateway.Initialize(ctx, order.User.Email, amount, uuid.NewString())
	if err != nil {
		s.logger.Error("Payment initialization failed", zap.Uint("orderId", order.ID), zap.Error(err))
		return Initialization{}, utils.NewServiceError("Unable to initiate payment", err)
	}

	err = db.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]any{
		"access_code":    started.AccessCode,
		"reference_code": started.Reference,
		"payment_status": models.PaymentPending,
	}).Error
	if err != nil {
		return Initialization{}, utils.NewServiceError("Unable to save payment reference", err)
	}

	return started, nil
}

// Verify settles a payment. On success the order is marked paid, the buyer's cart is cleared
// and the providers and sellers involved are notified, all in one transaction.
func (s *Service) Verify(ctx context.Context, buyerID uint, reference string) (*models.Order, error) {
	if reference == "" {
		return nil, utils.NewValidationError("Payment reference is required")
	}
	db := s.db.WithContext(ctx)

	var order models.Order
	err := db.Where("reference_code = ? AND user_id = ?", reference, buyerID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, utils.NewServiceError("Unable to load order", err)
	}
	if order.PaymentStatus == models.PaymentPaid {
		return nil, utils.NewUnauthorizedError("Order has already been paid for")
	}

	ok, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		s.logger.Error("Payment verification failed", zap.Uint("orderId", order.ID), zap.Error(err))
		return nil, utils.NewServiceError("Unable to verify payment", err)
	}

	if !ok {
		if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("payment_status", models.PaymentFailed).Error; err != nil {
			return nil, utils.NewServiceError("Unable to update order", err)
		}
		return nil, utils.NewServiceError("Payment was not successful", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var locked models.Order
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, order.ID).Error; err != nil {
			return err
		}
		if locked.PaymentStatus == models.PaymentPaid {
			return utils.NewUnauthorizedError("Order has already been paid for")
		}

		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("payment_status", models.PaymentPaid).Error; err != nil {
			return fmt.Errorf("mark order paid: %w", err)
		}

		if err := clearCart(tx, buyerID); err != nil {
			return err
		}

		var groups []models.OrderGroup
		err := tx.Preload("OrderItems", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
			Preload("OrderItems.Product").
			Where("order_id = ?", order.ID).
			Order("id").
			Find(&groups).Error
		if err != nil {
			return fmt.Errorf("load order groups: %w", err)
		}

		return notifications.Record(tx, placementNotices(order, groups)...)
	})
	if err != nil {
		if utils.IsAppError(err) {
			return nil, err
		}
		return nil, utils.NewServiceError("Unable to complete payment", err)
	}

	s.logger.Info("Order paid", zap.Uint("orderId", order.ID), zap.String("reference", reference))

	order.PaymentStatus = models.PaymentPaid
	return &order, nil
}

func placementNotices(order models.Order, groups []models.OrderGroup) []notifications.Notice {
	var notices []notifications.Notice
	for _, g := range groups {
		if g.LogisticsProviderID != nil {
			notices = append(notices, notifications.OrderPlacement{
				To:           notifications.ToLogistics(*g.LogisticsProviderID),
				OrderID:      order.ID,
				OrderGroupID: g.ID,
				OrderNumber:  order.OrderNumber,
			})
		}
		for _, item := range g.OrderItems {
			productID := item.ProductID
			notices = append(notices, notifications.OrderPlacement{
				To:           notifications.ToUser(g.SellerID),
				OrderID:      order.ID,
				OrderGroupID: g.ID,
				OrderNumber:  order.OrderNumber,
				ProductID:    &productID,
				ProductName:  item.Product.Name,
				Quantity:     item.Quantity,
			})
		}
	}
	return notices
}

func clearCart(tx *gorm.DB, userID uint) error {
	var cartIDs []uint
	if err := tx.Model(&models.Cart{}).Where("user_id = ?", userID).Pluck("id", &cartIDs).Error; err != nil {
		return fmt.Errorf("find cart: %w", err)
	}
	if len(cartIDs) == 0 {
		return nil
	}
	if err := tx.Unscoped().Where("cart_id IN ?", cartIDs).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}
	if err := tx.Unscoped().Where("id IN ?", cartIDs).Delete(&models.Cart{}).Error; err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
