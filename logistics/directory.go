package logistics

import (
	"context"

	"github.com/Kariqs/agroxhub-api/models"
	"gorm.io/gorm"
)

// GormDirectory reads provider coverage records. Pass a transaction handle to read inside it.
type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) ProvidersByRegion(ctx context.Context, regionID uint) ([]uint, error) {
	var ids []uint
	err := d.db.WithContext(ctx).
		Model(&models.LogisticsProviderRegion{}).
		Where("region_id = ?", regionID).
		Order("id").
		Pluck("logistics_provider_id", &ids).Error
	return ids, err
}

func (d *GormDirectory) CategoryCosts(ctx context.Context, providerIDs, categoryIDs []uint) ([]CategoryCost, error) {
	if len(providerIDs) == 0 || len(categoryIDs) == 0 {
		return nil, nil
	}

	var rows []models.LogisticsProviderCategory
	err := d.db.WithContext(ctx).
		Where("logistics_provider_id IN ? AND category_id IN ?", providerIDs, categoryIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	costs := make([]CategoryCost, 0, len(rows))
	for _, row := range rows {
		costs = append(costs, CategoryCost{
			ProviderID: row.LogisticsProviderID,
			CategoryID: row.CategoryID,
			UnitCost:   row.UnitCost,
		})
	}
	return costs, nil
}

// UnitCost returns the provider's unit cost for a category, or 0 when it has none.
func (d *GormDirectory) UnitCost(ctx context.Context, providerID, categoryID uint) (float64, error) {
	costs, err := d.CategoryCosts(ctx, []uint{providerID}, []uint{categoryID})
	if err != nil {
		return 0, err
	}
	if len(costs) == 0 {
		return 0, nil
	}
	return costs[0].UnitCost, nil
}
