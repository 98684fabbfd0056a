package logistics

import (
	"fmt"
	"strings"
)

type SelectionPolicy string

const (
	// SelectFirstFit takes the first fully eligible provider.
	SelectFirstFit SelectionPolicy = "first_fit"
	// SelectCheapest takes the provider with the lowest group cost; ties keep discovery order.
	SelectCheapest SelectionPolicy = "cheapest"
)

func ParseSelectionPolicy(s string) (SelectionPolicy, error) {
	switch SelectionPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SelectFirstFit:
		return SelectFirstFit, nil
	case SelectCheapest:
		return SelectCheapest, nil
	default:
		return "", fmt.Errorf("unknown provider selection policy %q", s)
	}
}

// Select picks one match and returns it with its group cost. ok is false when matches is empty.
func (p SelectionPolicy) Select(matches []Match, lines []CostLine, distanceKm float64) (Match, float64, bool) {
	if len(matches) == 0 {
		return Match{}, 0, false
	}

	best := matches[0]
	bestCost := ComputeGroupCost(best.UnitCosts, lines, distanceKm)
	if p != SelectCheapest {
		return best, bestCost, true
	}

	for _, m := range matches[1:] {
		cost := ComputeGroupCost(m.UnitCosts, lines, distanceKm)
		if cost < bestCost {
			best, bestCost = m, cost
		}
	}
	return best, bestCost, true
}
