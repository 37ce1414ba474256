package adapters

import (
	"github.com/de-tools/policy-atlas/pkg/models/api"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

func MapCoverageResultDomainToApi(r domain.CoverageResult) api.CoverageResult {
	return api.CoverageResult{
		SubscriptionID:      r.SubscriptionID,
		SubscriptionName:    r.SubscriptionName,
		HasBaseline:         r.HasBaseline,
		MatchingAssignments: r.MatchingAssignments,
		Error:               r.Err,
	}
}

func MapCoverageReportDomainToApi(r domain.CoverageReport) api.CoverageReport {
	report := api.CoverageReport{
		Total:              r.Total,
		WithBaseline:       r.WithBaseline,
		WithoutBaseline:    r.WithoutBaseline,
		CoveragePercentage: r.CoveragePercentage,
		Results:            make([]api.CoverageResult, 0, len(r.Results)),
	}
	for _, result := range r.Results {
		report.Results = append(report.Results, MapCoverageResultDomainToApi(result))
	}
	return report
}

func MapQuotaStateDomainToApi(s domain.QuotaState) api.QuotaState {
	return api.QuotaState{
		Scope:           s.Scope,
		CurrentCount:    s.CurrentCount,
		PlannedCount:    s.PlannedCount,
		ProjectedTotal:  s.ProjectedTotal,
		HardLimit:       s.HardLimit,
		SafetyThreshold: s.SafetyThreshold,
		WithinLimits:    s.WithinLimits,
		WarningLevel:    string(s.WarningLevel),
	}
}
