package logistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGroupCost(t *testing.T) {
	costs := map[uint]float64{1: 50, 2: 80}

	tests := []struct {
		name     string
		lines    []CostLine
		distance float64
		want     float64
	}{
		{"single category", []CostLine{{CategoryID: 1, Quantity: 2}}, 2, 340},
		{"surcharge applied once for many lines", []CostLine{{1, 1}, {1, 1}, {2, 1}}, 1, 300},
		{"missing unit cost counts as zero", []CostLine{{CategoryID: 9, Quantity: 3}}, 1, 120},
		{"no distance", []CostLine{{CategoryID: 2, Quantity: 1}}, 0, 80},
		{"empty group", nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeGroupCost(costs, tt.lines, tt.distance), 1e-9)
		})
	}
}

func TestComputeGroupCostNeverNegative(t *testing.T) {
	got := ComputeGroupCost(map[uint]float64{1: -500}, []CostLine{{CategoryID: 1, Quantity: 1}}, 1)
	assert.Equal(t, 0.0, got)
}

func TestDistanceSurcharge(t *testing.T) {
	assert.InDelta(t, 207.0, DistanceSurcharge(1.725), 1e-9)
	assert.Equal(t, 0.0, DistanceSurcharge(-3))
}

func TestAdjustGroupCostMatchesFullRecompute(t *testing.T) {
	costs := map[uint]float64{1: 50, 2: 80}
	distance := 2.4

	before := []CostLine{{1, 3}, {2, 2}}
	old := ComputeGroupCost(costs, before, distance)

	cases := []struct {
		name   string
		newQty int
		after  []CostLine
	}{
		{"increment", 4, []CostLine{{1, 4}, {2, 2}}},
		{"decrement", 2, []CostLine{{1, 2}, {2, 2}}},
		{"delete", 0, []CostLine{{2, 2}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			incremental := AdjustGroupCost(old, costs[1], 3, tc.newQty)
			assert.InDelta(t, ComputeGroupCost(costs, tc.after, distance), incremental, 1e-9)
		})
	}
}
