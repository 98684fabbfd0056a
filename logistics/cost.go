package logistics

// DistanceCostPerKm is charged once per order group for every kilometer travelled.
const DistanceCostPerKm = 120.0

type CostLine struct {
	CategoryID uint
	Quantity   int
}

// DistanceSurcharge is the per-group distance component of a logistics cost.
func DistanceSurcharge(distanceKm float64) float64 {
	if distanceKm <= 0 {
		return 0
	}
	return distanceKm * DistanceCostPerKm
}

// ComputeGroupCost sums unit cost x quantity over the lines and adds one distance surcharge.
// Categories without a unit cost contribute nothing. The result is not rounded.
func ComputeGroupCost(unitCosts map[uint]float64, lines []CostLine, distanceKm float64) float64 {
	var total float64
	for _, line := range lines {
		total += unitCosts[line.CategoryID] * float64(line.Quantity)
	}
	total += DistanceSurcharge(distanceKm)
	if total < 0 {
		return 0
	}
	return total
}

// AdjustGroupCost swaps one line's contribution in an existing group cost.
// A deleted line has newQty 0.
func AdjustGroupCost(groupCost, unitCost float64, oldQty, newQty int) float64 {
	return groupCost - float64(oldQty)*unitCost + float64(newQty)*unitCost
}
