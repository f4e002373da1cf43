package domain

// OptimizeMultiCloud builds the best-of-breed bundle: for each category, the
// provider with the strictly lowest cost wins; ties keep the earlier provider
// in the given order. The result is an optimistic lower bound on spend.
func OptimizeMultiCloud(providers []CloudProviderCostBreakdown) MultiCloudEstimate {
	if len(providers) == 0 {
		return MultiCloudEstimate{Breakdown: map[Category]string{}}
	}

	breakdown := make(map[Category]string, len(Categories))
	var total float64

	for _, category := range Categories {
		best := providers[0]
		for _, candidate := range providers[1:] {
			if candidate.CategoryCost(category) < best.CategoryCost(category) {
				best = candidate
			}
		}
		breakdown[category] = best.Name
		total += best.CategoryCost(category)
	}

	return MultiCloudEstimate{
		Cost:      round2(total),
		Breakdown: breakdown,
	}
}
