package domain

import "math"

// CoverageResult records whether one subscription has a baseline-relevant
// policy assignment. Err carries the query failure for subscriptions the
// audit could not inspect; such results still count toward the totals.
type CoverageResult struct {
	SubscriptionID      string
	SubscriptionName    string
	HasBaseline         bool
	MatchingAssignments int
	Err                 string
}

// CoverageReport aggregates per-subscription coverage across a hierarchy.
type CoverageReport struct {
	Total              int
	WithBaseline       int
	WithoutBaseline    []string
	CoveragePercentage float64
	Results            []CoverageResult
}

// CoveragePercent computes the covered fraction as a percentage rounded to
// one decimal. Zero subscriptions yields zero, not NaN.
func CoveragePercent(withBaseline, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(withBaseline)/float64(total)*1000) / 10
}
