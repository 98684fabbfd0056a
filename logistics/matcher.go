package logistics

import (
	"context"
	"fmt"
)

type CategoryCost struct {
	ProviderID uint
	CategoryID uint
	UnitCost   float64
}

type ProviderDirectory interface {
	ProvidersByRegion(ctx context.Context, regionID uint) ([]uint, error)
	CategoryCosts(ctx context.Context, providerIDs, categoryIDs []uint) ([]CategoryCost, error)
}

// Match is a provider that serves both regions and prices every required category.
type Match struct {
	ProviderID uint
	UnitCosts  map[uint]float64
}

type Matcher struct {
	directory ProviderDirectory
}

func NewMatcher(directory ProviderDirectory) *Matcher {
	return &Matcher{directory: directory}
}

// MatchProviders returns fully eligible providers in pickup-region discovery order.
// No eligible provider is an empty result, not an error.
func (m *Matcher) MatchProviders(ctx context.Context, pickupRegionID, deliveryRegionID uint, categoryIDs []uint) ([]Match, error) {
	pickup, err := m.directory.ProvidersByRegion(ctx, pickupRegionID)
	if err != nil {
		return nil, fmt.Errorf("providers for pickup region %d: %w", pickupRegionID, err)
	}

	delivery := pickup
	if deliveryRegionID != pickupRegionID {
		delivery, err = m.directory.ProvidersByRegion(ctx, deliveryRegionID)
		if err != nil {
			return nil, fmt.Errorf("providers for delivery region %d: %w", deliveryRegionID, err)
		}
	}

	eligible := intersect(pickup, delivery)
	if len(eligible) == 0 {
		return nil, nil
	}

	required := dedupe(categoryIDs)
	costs, err := m.directory.CategoryCosts(ctx, eligible, required)
	if err != nil {
		return nil, fmt.Errorf("category costs: %w", err)
	}

	supported := make(map[uint]map[uint]float64, len(eligible))
	for _, c := range costs {
		if supported[c.ProviderID] == nil {
			supported[c.ProviderID] = make(map[uint]float64)
		}
		supported[c.ProviderID][c.CategoryID] = c.UnitCost
	}

	var matches []Match
	for _, providerID := range eligible {
		unitCosts := supported[providerID]
		if !coversAll(unitCosts, required) {
			continue
		}
		if unitCosts == nil {
			unitCosts = map[uint]float64{}
		}
		matches = append(matches, Match{ProviderID: providerID, UnitCosts: unitCosts})
	}
	return matches, nil
}

func coversAll(unitCosts map[uint]float64, required []uint) bool {
	for _, categoryID := range required {
		if _, ok := unitCosts[categoryID]; !ok {
			return false
		}
	}
	return true
}

func intersect(first, second []uint) []uint {
	inSecond := make(map[uint]struct{}, len(second))
	for _, id := range second {
		inSecond[id] = struct{}{}
	}

	seen := make(map[uint]struct{}, len(first))
	var out []uint
	for _, id := range first {
		if _, ok := inSecond[id]; !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
