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

type CreateOrderInput struct {
	BuyerID          uint
	CartID           uint
	DeliveryAddress  string
	DeliveryRegionID uint
	LogisticsNote    string
}

// groupPlan is one seller's share of the cart, priced before anything is written.
type groupPlan struct {
	seller     models.User
	items      []models.CartItem
	lines      []logistics.CostLine
	providerID *uint
	cost       float64
	distanceKm float64
}

// CreateOrder turns the buyer's cart into a pending order, replacing any earlier unpaid one.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	db := s.db.WithContext(ctx)

	var region models.Region
	if err := db.First(&region, in.DeliveryRegionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Region not found")
		}
		return nil, utils.NewServiceError("Unable to load region", err)
	}

	var buyer models.User
	if err := db.First(&buyer, in.BuyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("User not found")
		}
		return nil, utils.NewServiceError("Unable to load user", err)
	}

	var cart models.Cart
	err := db.Preload("Items", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("Items.Product").
		Preload("Items.Product.Seller.Region").
		First(&cart, in.CartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewValidationError("Cart is empty")
		}
		return nil, utils.NewServiceError("Unable to load cart", err)
	}
	if cart.UserID != in.BuyerID {
		return nil, utils.NewUnauthorizedError("Cart does not belong to you")
	}
	if len(cart.Items) == 0 {
		return nil, utils.NewValidationError("Cart is empty")
	}

	plans, err := partitionBySeller(cart.Items)
	if err != nil {
		return nil, err
	}

	for _, plan := range plans {
		if err := s.assignProvider(ctx, plan, region); err != nil {
			return nil, err
		}
	}

	order := models.Order{
		UserID:           buyer.ID,
		OrderNumber:      utils.GenerateOrderNumber(buyer.Name, s.now()),
		DeliveryAddress:  in.DeliveryAddress,
		DeliveryRegionID: region.ID,
		LogisticsNote:    in.LogisticsNote,
		PaymentStatus:    models.PaymentPending,
		Status:           models.OrderPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := discardPendingOrders(tx, buyer.ID); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, plan := range plans {
			if err := createGroup(tx, order.ID, plan); err != nil {
				return err
			}
		}

		_, err := refreshTotals(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, utils.NewServiceError("Unable to create order", err)
	}

	s.logger.Info("Order created",
		zap.Uint("orderId", order.ID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Int("groups", len(plans)),
	)

	return s.loadOrder(ctx, order.ID)
}

// partitionBySeller keeps sellers in the order they first appear in the cart.
func partitionBySeller(items []models.CartItem) ([]*groupPlan, error) {
	var plans []*groupPlan
	bySeller := make(map[uint]*groupPlan)

	for _, item := range items {
		if item.Quantity < MinItemQuantity || item.Quantity > MaxItemQuantity {
			return nil, utils.NewValidationError(
				fmt.Sprintf("Quantity of %s must be between %d and %d", item.Product.Name, MinItemQuantity, MaxItemQuantity))
		}

		plan, ok := bySeller[item.Product.SellerID]
		if !ok {
			plan = &groupPlan{seller: item.Product.Seller}
			plan.seller.ID = item.Product.SellerID
			bySeller[item.Product.SellerID] = plan
			plans = append(plans, plan)
		}

		plan.items = append(plan.items, item)
		plan.lines = append(plan.lines, logistics.CostLine{
			CategoryID: item.Product.CategoryID,
			Quantity:   item.Quantity,
		})
	}
	return plans, nil
}

// assignProvider leaves the plan unassigned when no provider fits or the distance lookup fails.
func (s *Service) assignProvider(ctx context.Context, plan *groupPlan, delivery models.Region) error {
	if plan.seller.RegionID == nil || plan.seller.Region == nil {
		s.logger.Warn("Seller has no region, group left unassigned", zap.Uint("sellerId", plan.seller.ID))
		assignmentOutcomes.WithLabelValues(outcomeUnassigned).Inc()
		return nil
	}

	categoryIDs := make([]uint, 0, len(plan.lines))
	for _, line := range plan.lines {
		categoryIDs = append(categoryIDs, line.CategoryID)
	}

	matches, err := s.matcher.MatchProviders(ctx, *plan.seller.RegionID, delivery.ID, categoryIDs)
	if err != nil {
		return utils.NewServiceError("Unable to match logistics providers", err)
	}
	if len(matches) == 0 {
		assignmentOutcomes.WithLabelValues(outcomeUnassigned).Inc()
		return nil
	}

	km, err := s.distance.ResolveDistanceKm(ctx,
		logistics.CoordinatesOf(plan.seller.Region),
		logistics.CoordinatesOf(&delivery),
	)
	if err != nil {
		s.logger.Warn("Distance unavailable, group left unassigned",
			zap.Uint("sellerId", plan.seller.ID),
			zap.Uint("deliveryRegionId", delivery.ID),
			zap.Error(err),
		)
		assignmentOutcomes.WithLabelValues(outcomeDistanceError).Inc()
		return nil
	}

	match, cost, _ := s.policy.Select(matches, plan.lines, km)
	providerID := match.ProviderID
	plan.providerID = &providerID
	plan.cost = cost
	plan.distanceKm = km
	assignmentOutcomes.WithLabelValues(outcomeAssigned).Inc()
	return nil
}

func discardPendingOrders(tx *gorm.DB, buyerID uint) error {
	var ids []uint
	err := tx.Model(&models.Order{}).
		Where("user_id = ? AND payment_status = ? AND status = ?", buyerID, models.PaymentPending, models.OrderPending).
		Pluck("id", &ids).Error
	if err != nil {
		return fmt.Errorf("find pending orders: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	if err := tx.Unscoped().Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
		return fmt.Errorf("delete pending order items: %w", err)
	}
	if err := tx.Unscoped().Where("order_id IN ?", ids).Delete(&models.OrderGroup{}).Error; err != nil {
		return fmt.Errorf("delete pending order groups: %w", err)
	}
	if err := tx.Unscoped().Where("id IN ?", ids).Delete(&models.Order{}).Error; err != nil {
		return fmt.Errorf("delete pending orders: %w", err)
	}
	return nil
}

func createGroup(tx *gorm.DB, orderID uint, plan *groupPlan) error {
	code, err := utils.GenerateCode(6)
	if err != nil {
		return fmt.Errorf("generate completion code: %w", err)
	}

	group := models.OrderGroup{
		OrderID:             orderID,
		SellerID:            plan.seller.ID,
		LogisticsProviderID: plan.providerID,
		LogisticsCost:       plan.cost,
		DistanceKm:          plan.distanceKm,
		OrderCompletionCode: code,
		Status:              models.GroupPending,
	}
	if err := tx.Omit(clause.Associations).Create(&group).Error; err != nil {
		return fmt.Errorf("create order group: %w", err)
	}

	items := make([]models.OrderItem, 0, len(plan.items))
	for _, ci := range plan.items {
		items = append(items, models.OrderItem{
			OrderID:      orderID,
			OrderGroupID: group.ID,
			ProductID:    ci.ProductID,
			Quantity:     ci.Quantity,
			UnitPrice:    ci.Product.UnitPrice,
			TotalPrice:   ci.Product.UnitPrice * float64(ci.Quantity),
		})
	}
	if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
		return fmt.Errorf("create order items: %w", err)
	}
	return nil
}
