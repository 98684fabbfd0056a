package notifications

import (
	"encoding/json"
	"testing"

	"github.com/Kariqs/agroxhub-api/models"
	"github.com/Kariqs/agroxhub-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoutesRecipient(t *testing.T) {
	row, err := Build(OrderPlacement{To: ToLogistics(7), OrderID: 1, OrderGroupID: 2, OrderNumber: "JA-1"})
	require.NoError(t, err)
	assert.Equal(t, TypeOrderPlacement, row.Type)
	assert.Equal(t, models.NotificationTargetLogistics, row.Target)
	require.NotNil(t, row.LogisticsProviderID)
	assert.Equal(t, uint(7), *row.LogisticsProviderID)
	assert.Nil(t, row.UserID)
	assert.Nil(t, row.ProductID)

	productID := uint(9)
	row, err = Build(OrderPlacement{To: ToUser(3), OrderID: 1, OrderGroupID: 2, OrderNumber: "JA-1", ProductID: &productID, ProductName: "Maize", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationTargetUser, row.Target)
	assert.Equal(t, uint(3), *row.UserID)
	assert.Equal(t, uint(9), *row.ProductID)
	assert.Contains(t, row.Summary, "2 x Maize")
}

func TestBuildDetailsShape(t *testing.T) {
	row, err := Build(OutOfStock{To: ToUser(1), ProductID: 4, ProductName: "Maize", Unit: "bag", Remaining: 3})
	require.NoError(t, err)
	assert.Equal(t, "Only 3 bags of Maize is left in your store. Restock now!", row.Summary)

	var details map[string]any
	require.NoError(t, json.Unmarshal(row.Details, &details))
	assert.Equal(t, map[string]any{"productName": "Maize", "remaining": float64(3)}, details)

	row, err = Build(OrderReturn{To: ToUser(1), OrderNumber: "JA-1", Reason: "spoilt"})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(row.Details, &details))
	assert.Equal(t, "spoilt", details["reason"])
}

func TestRecord(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, Record(db))
	require.NoError(t, Record(db,
		OrderInTransit{To: ToUser(1), OrderID: 1, OrderGroupID: 1, OrderNumber: "JA-1", ProviderName: "Swift"},
		OrderDelivery{To: ToUser(1), OrderID: 1, OrderGroupID: 1, OrderNumber: "JA-1", Delivered: true},
	))

	var rows []models.Notification
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, TypeOrderInTransit, rows[0].Type)
	assert.Equal(t, "Order delivered successfully", rows[1].Subject)
	assert.False(t, rows[1].Read)
}
