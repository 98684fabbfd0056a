package logistics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	regions map[uint][]uint
	costs   []CategoryCost
	err     error
}

func (f *fakeDirectory) ProvidersByRegion(_ context.Context, regionID uint) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.regions[regionID], nil
}

func (f *fakeDirectory) CategoryCosts(_ context.Context, providerIDs, categoryIDs []uint) ([]CategoryCost, error) {
	providers := make(map[uint]bool)
	for _, id := range providerIDs {
		providers[id] = true
	}
	categories := make(map[uint]bool)
	for _, id := range categoryIDs {
		categories[id] = true
	}

	var out []CategoryCost
	for _, c := range f.costs {
		if providers[c.ProviderID] && categories[c.CategoryID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func providerIDs(matches []Match) []uint {
	ids := make([]uint, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ProviderID)
	}
	return ids
}

func TestMatchProviders(t *testing.T) {
	dir := &fakeDirectory{
		regions: map[uint][]uint{
			10: {3, 1, 2, 4},
			20: {1, 2, 3},
		},
		costs: []CategoryCost{
			{ProviderID: 1, CategoryID: 100, UnitCost: 50},
			{ProviderID: 1, CategoryID: 200, UnitCost: 80},
			{ProviderID: 2, CategoryID: 100, UnitCost: 40},
			{ProviderID: 3, CategoryID: 100, UnitCost: 60},
			{ProviderID: 3, CategoryID: 200, UnitCost: 70},
			{ProviderID: 4, CategoryID: 100, UnitCost: 10},
			{ProviderID: 4, CategoryID: 200, UnitCost: 10},
		},
	}
	m := NewMatcher(dir)

	t.Run("requires both regions and every category", func(t *testing.T) {
		matches, err := m.MatchProviders(context.Background(), 10, 20, []uint{100, 200})
		require.NoError(t, err)
		assert.Equal(t, []uint{3, 1}, providerIDs(matches))
		assert.Equal(t, map[uint]float64{100: 60, 200: 70}, matches[0].UnitCosts)
	})

	t.Run("duplicate categories are collapsed", func(t *testing.T) {
		matches, err := m.MatchProviders(context.Background(), 10, 20, []uint{100, 100})
		require.NoError(t, err)
		assert.Equal(t, []uint{3, 1, 2}, providerIDs(matches))
	})

	t.Run("same pickup and delivery region", func(t *testing.T) {
		matches, err := m.MatchProviders(context.Background(), 10, 10, []uint{200})
		require.NoError(t, err)
		assert.Equal(t, []uint{3, 1, 4}, providerIDs(matches))
	})

	t.Run("no coverage is an empty result", func(t *testing.T) {
		matches, err := m.MatchProviders(context.Background(), 10, 99, []uint{100})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestMatchProvidersDirectoryError(t *testing.T) {
	m := NewMatcher(&fakeDirectory{err: errors.New("connection refused")})
	_, err := m.MatchProviders(context.Background(), 1, 2, []uint{1})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSelectionPolicy(t *testing.T) {
	matches := []Match{
		{ProviderID: 1, UnitCosts: map[uint]float64{1: 90}},
		{ProviderID: 2, UnitCosts: map[uint]float64{1: 40}},
		{ProviderID: 3, UnitCosts: map[uint]float64{1: 40}},
	}
	lines := []CostLine{{CategoryID: 1, Quantity: 2}}

	first, cost, ok := SelectFirstFit.Select(matches, lines, 1)
	require.True(t, ok)
	assert.Equal(t, uint(1), first.ProviderID)
	assert.InDelta(t, 300.0, cost, 1e-9)

	cheapest, cost, ok := SelectCheapest.Select(matches, lines, 1)
	require.True(t, ok)
	assert.Equal(t, uint(2), cheapest.ProviderID)
	assert.InDelta(t, 200.0, cost, 1e-9)

	_, _, ok = SelectCheapest.Select(nil, lines, 1)
	assert.False(t, ok)
}

func TestParseSelectionPolicy(t *testing.T) {
	p, err := ParseSelectionPolicy("")
	require.NoError(t, err)
	assert.Equal(t, SelectFirstFit, p)

	p, err = ParseSelectionPolicy(" Cheapest ")
	require.NoError(t, err)
	assert.Equal(t, SelectCheapest, p)

	_, err = ParseSelectionPolicy("random")
	assert.Error(t, err)
}
