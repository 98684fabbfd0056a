package checkout

import (
	"fmt"

	"github.com/Kariqs/agroxhub-api/models"
	"gorm.io/gorm"
)

const (
	VATRate         = 0.1
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

type Totals struct {
	ProductsAmount  float64
	LogisticsAmount float64
	VAT             float64
	TotalAmount     float64
}

// ComputeTotals re-sums every item and group cost. Unassigned groups carry a zero cost.
func ComputeTotals(groups []models.OrderGroup) Totals {
	var t Totals
	for _, g := range groups {
		for _, item := range g.OrderItems {
			t.ProductsAmount += item.TotalPrice
		}
		if g.LogisticsProviderID != nil {
			t.LogisticsAmount += g.LogisticsCost
		}
	}
	t.VAT = VATRate * (t.ProductsAmount + t.LogisticsAmount)
	t.TotalAmount = t.ProductsAmount + t.LogisticsAmount + t.VAT
	return t
}

func (t Totals) columns() map[string]any {
	return map[string]any{
		"products_amount":  t.ProductsAmount,
		"logistics_amount": t.LogisticsAmount,
		"vat":              t.VAT,
		"total_amount":     t.TotalAmount,
	}
}

func refreshTotals(tx *gorm.DB, orderID uint) (Totals, error) {
	var groups []models.OrderGroup
	if err := tx.Preload("OrderItems").Where("order_id = ?", orderID).Find(&groups).Error; err != nil {
		return Totals{}, fmt.Errorf("load order groups: %w", err)
	}

	totals := ComputeTotals(groups)
	if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Updates(totals.columns()).Error; err != nil {
		return Totals{}, fmt.Errorf("update order totals: %w", err)
	}
	return totals, nil
}
