package api

type CoverageResult struct {
	SubscriptionID      string `json:"subscription_id"`
	SubscriptionName    string `json:"subscription_name"`
	HasBaseline         bool   `json:"has_baseline"`
	MatchingAssignments int    `json:"matching_assignments"`
	Error               string `json:"error,omitempty"`
}

type CoverageReport struct {
	Total              int              `json:"total"`
	WithBaseline       int              `json:"with_baseline"`
	WithoutBaseline    []string         `json:"without_baseline"`
	CoveragePercentage float64          `json:"coverage_percentage"`
	Results            []CoverageResult `json:"results"`
}

type QuotaState struct {
	Scope           string `json:"scope"`
	CurrentCount    int    `json:"current_count"`
	PlannedCount    int    `json:"planned_count"`
	ProjectedTotal  int    `json:"projected_total"`
	HardLimit       int    `json:"hard_limit"`
	SafetyThreshold int    `json:"safety_threshold"`
	WithinLimits    bool   `json:"within_limits"`
	WarningLevel    string `json:"warning_level"`
}
