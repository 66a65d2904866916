package analyzer

import "math"

// costBucket maps a maximum base cost to its human-readable label.
type costBucket struct {
	Max   int
	Label string
}

// costBuckets are the six fixed cost ranges, in ascending order. Base cost
// units are internal heuristic weights, not currency; the estimator only
// ever emits one of these labels.
var costBuckets = []costBucket{
	{0, "Under $50/month"},
	{15, "$50 - $200/month"},
	{35, "$200 - $500/month"},
	{70, "$500 - $1,500/month"},
	{120, "$1,500 - $5,000/month"},
	{math.MaxInt, "Over $5,000/month"},
}

// BaseCost computes the weighted keyword-family sum for content.
func BaseCost(content string) int {
	base := 0
	for _, f := range costCatalog {
		base += countMatches(f.Pattern, content) * f.Weight
	}
	return base
}

// EstimateCost maps content to a cost bucket label. The mapping is monotonic:
// a higher base cost never yields a cheaper label.
func EstimateCost(content string) string {
	return bucketLabel(BaseCost(content))
}

func bucketLabel(base int) string {
	for _, b := range costBuckets {
		if base <= b.Max {
			return b.Label
		}
	}
	return costBuckets[len(costBuckets)-1].Label
}

// bucketIndex returns the position of the bucket selected for base.
func bucketIndex(base int) int {
	for i, b := range costBuckets {
		if base <= b.Max {
			return i
		}
	}
	return len(costBuckets) - 1
}
