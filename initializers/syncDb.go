package initializers

import (
	"github.com/Kariqs/agroxhub-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Region{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.LogisticsProvider{},
		&models.LogisticsProviderRegion{},
		&models.LogisticsProviderCategory{},
		&models.Order{},
		&models.OrderGroup{},
		&models.OrderItem{},
		&models.ReturnedOrder{},
		&models.Notification{},
	)
}
