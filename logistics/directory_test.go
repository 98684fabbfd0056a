package logistics

import (
	"context"
	"testing"

	"github.com/Kariqs/agroxhub-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDirectoryMatching(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	nairobi := testutil.Region(t, db, "Nairobi", -1.28, 36.82)
	nakuru := testutil.Region(t, db, "Nakuru", -0.3, 36.07)
	grains := testutil.Category(t, db, "Grains")
	dairy := testutil.Category(t, db, "Dairy")

	both := testutil.Provider(t, db, "Both", []uint{nairobi.ID, nakuru.ID}, map[uint]float64{grains.ID: 50, dairy.ID: 80})
	testutil.Provider(t, db, "Partial", []uint{nairobi.ID, nakuru.ID}, map[uint]float64{grains.ID: 20})
	testutil.Provider(t, db, "Local", []uint{nairobi.ID}, map[uint]float64{grains.ID: 10, dairy.ID: 10})

	dir := NewGormDirectory(db)
	matches, err := NewMatcher(dir).MatchProviders(ctx, nairobi.ID, nakuru.ID, []uint{grains.ID, dairy.ID})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, both.ID, matches[0].ProviderID)
	assert.Equal(t, 80.0, matches[0].UnitCosts[dairy.ID])

	cost, err := dir.UnitCost(ctx, both.ID, grains.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, cost)

	cost, err = dir.UnitCost(ctx, both.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cost)
}
