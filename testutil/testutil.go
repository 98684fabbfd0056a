// Package testutil builds an in-memory database with marketplace fixtures for package tests.
package testutil

import (
	"testing"

	"github.com/Kariqs/agroxhub-api/initializers"
	"github.com/Kariqs/agroxhub-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with every table migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db))
	return db
}

func Ptr[T any](v T) *T { return &v }

func Region(t *testing.T, db *gorm.DB, name string, lat, long float64) models.Region {
	t.Helper()
	r := models.Region{Name: name, Lat: Ptr(lat), Long: Ptr(long)}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func User(t *testing.T, db *gorm.DB, name, userType string, regionID *uint) models.User {
	t.Helper()
	u := models.User{
		Name:     name,
		Email:    uuid.NewString() + "@example.com",
		Type:     userType,
		RegionID: regionID,
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func Category(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	c := models.Category{Name: name}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func Product(t *testing.T, db *gorm.DB, name string, sellerID, categoryID uint, price float64) models.Product {
	t.Helper()
	p := models.Product{
		Name:               name,
		Unit:               "bag",
		UnitPrice:          price,
		Quantity:           100,
		LowStockAlertLevel: 5,
		SellerID:           sellerID,
		CategoryID:         categoryID,
	}
	require.NoError(t, db.Omit("Seller", "Category").Create(&p).Error)
	return p
}

// Provider creates a logistics provider covering regions and pricing categories at the given unit costs.
func Provider(t *testing.T, db *gorm.DB, name string, regionIDs []uint, unitCosts map[uint]float64) models.LogisticsProvider {
	t.Helper()
	p := models.LogisticsProvider{Name: name, Email: uuid.NewString() + "@example.com"}
	require.NoError(t, db.Create(&p).Error)

	for _, regionID := range regionIDs {
		require.NoError(t, db.Create(&models.LogisticsProviderRegion{
			LogisticsProviderID: p.ID,
			RegionID:            regionID,
		}).Error)
	}
	for categoryID, cost := range unitCosts {
		require.NoError(t, db.Create(&models.LogisticsProviderCategory{
			LogisticsProviderID: p.ID,
			CategoryID:          categoryID,
			UnitCost:            cost,
		}).Error)
	}
	return p
}

type CartLine struct {
	ProductID uint
	Quantity  int
}

func Cart(t *testing.T, db *gorm.DB, userID uint, lines ...CartLine) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)

	for _, line := range lines {
		require.NoError(t, db.Omit("Product").Create(&models.CartItem{
			CartID:    cart.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}).Error)
	}
	return cart
}
