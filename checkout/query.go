package checkout

import (
	"context"
	"errors"
	"math"

	"github.com/Kariqs/agroxhub-api/logistics"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/utils"
	"gorm.io/gorm"
)

type OrderSummary struct {
	models.Order
	ProductCount int64 `json:"productCount"`
}

// ProviderQuote is an eligible provider with its group cost rounded for display.
type ProviderQuote struct {
	Provider models.LogisticsProvider `json:"provider"`
	Cost     float64                  `json:"cost"`
}

func (s *Service) loadOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.withOrderGraph(s.db.WithContext(ctx)).First(&order, orderID).Error
	if err != nil {
		return nil, utils.NewServiceError("Unable to load order", err)
	}
	return &order, nil
}

func (s *Service) withOrderGraph(q *gorm.DB) *gorm.DB {
	return q.Preload("DeliveryRegion").
		Preload("OrderGroups", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("OrderGroups.Seller").
		Preload("OrderGroups.LogisticsProvider").
		Preload("OrderGroups.OrderItems", func(q *gorm.DB) *gorm.DB { return q.Order("id") }).
		Preload("OrderGroups.OrderItems.Product")
}

// GetPendingOrder returns the buyer's order while it still awaits payment.
func (s *Service) GetPendingOrder(ctx context.Context, buyerID uint, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := s.withOrderGraph(s.db.WithContext(ctx)).
		Where("order_number = ? AND user_id = ?", orderNumber, buyerID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, utils.NewServiceError("Unable to load order", err)
	}

	if order.PaymentStatus != models.PaymentPending {
		return nil, utils.NewUnauthorizedError("Order has already been processed")
	}
	return &order, nil
}

// ListOrders returns one page of the buyer's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, buyerID uint, page, limit int) ([]OrderSummary, int64, error) {
	db := s.db.WithContext(ctx)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 15
	}

	var total int64
	if err := db.Model(&models.Order{}).Where("user_id = ?", buyerID).Count(&total).Error; err != nil {
		return nil, 0, utils.NewServiceError("Unable to fetch orders", err)
	}

	var orders []models.Order
	err := db.Preload("DeliveryRegion").
		Where("user_id = ?", buyerID).
		Order("created_at desc, id desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, utils.NewServiceError("Unable to fetch orders", err)
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	var counts []struct {
		OrderID uint
		Count   int64
	}
	if len(ids) > 0 {
		err = db.Model(&models.OrderItem{}).
			Select("order_id, count(*) as count").
			Where("order_id IN ?", ids).
			Group("order_id").
			Scan(&counts).Error
		if err != nil {
			return nil, 0, utils.NewServiceError("Unable to fetch orders", err)
		}
	}

	byOrder := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byOrder[c.OrderID] = c.Count
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, OrderSummary{Order: o, ProductCount: byOrder[o.ID]})
	}
	return summaries, total, nil
}

// GroupProviders lists every provider that could serve a group, with its cost for that group.
func (s *Service) GroupProviders(ctx context.Context, buyerID, groupID uint) ([]ProviderQuote, error) {
	db := s.db.WithContext(ctx)

	var group models.OrderGroup
	err := db.Preload("Order.DeliveryRegion").
		Preload("Seller.Region").
		Preload("OrderItems.Product").
		First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError("Order not found")
		}
		return nil, utils.NewServiceError("Unable to load order", err)
	}
	if group.Order == nil || group.Order.UserID != buyerID {
		return nil, utils.NewUnauthorizedError("You are not allowed to view this order")
	}
	if group.Seller == nil || group.Seller.Region == nil {
		return nil, utils.NewNotFoundError("No logistics provider available for this order")
	}

	lines := make([]logistics.CostLine, 0, len(group.OrderItems))
	categoryIDs := make([]uint, 0, len(group.OrderItems))
	for _, item := range group.OrderItems {
		lines = append(lines, logistics.CostLine{CategoryID: item.Product.CategoryID, Quantity: item.Quantity})
		categoryIDs = append(categoryIDs, item.Product.CategoryID)
	}

	matches, err := s.matcher.MatchProviders(ctx, group.Seller.Region.ID, group.Order.DeliveryRegionID, categoryIDs)
	if err != nil {
		return nil, utils.NewServiceError("Unable to match logistics providers", err)
	}
	if len(matches) == 0 {
		return nil, utils.NewNotFoundError("No logistics provider available for this order")
	}

	km, err := s.distance.ResolveDistanceKm(ctx,
		logistics.CoordinatesOf(group.Seller.Region),
		logistics.CoordinatesOf(&group.Order.DeliveryRegion),
	)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ProviderID)
	}
	var providers []models.LogisticsProvider
	if err := db.Where("id IN ?", ids).Find(&providers).Error; err != nil {
		return nil, utils.NewServiceError("Unable to load logistics providers", err)
	}
	byID := make(map[uint]models.LogisticsProvider, len(providers))
	for _, p := range providers {
		byID[p.ID] = p
	}

	quotes := make([]ProviderQuote, 0, len(matches))
	for _, m := range matches {
		provider, ok := byID[m.ProviderID]
		if !ok {
			continue
		}
		quotes = append(quotes, ProviderQuote{
			Provider: provider,
			Cost:     math.Round(logistics.ComputeGroupCost(m.UnitCosts, lines, km)),
		})
	}
	if len(quotes) == 0 {
		return nil, utils.NewNotFoundError("No logistics provider available for this order")
	}
	return quotes, nil
}
