package coverage

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// AssignmentFinder returns the baseline-relevant assignments at one scope.
type AssignmentFinder interface {
	LocateAt(ctx context.Context, scope string) ([]domain.PolicyAssignment, error)
}

// Auditor answers one question per subscription: does a baseline-relevant
// policy assignment exist there. It never creates anything.
type Auditor struct {
	finder AssignmentFinder
}

func NewAuditor(finder AssignmentFinder) *Auditor {
	return &Auditor{finder: finder}
}

// Audit inspects each subscription individually. A subscription the finder
// cannot answer for is recorded with HasBaseline=false and the error
// attached; it still counts toward the totals.
func (a *Auditor) Audit(ctx context.Context, subscriptions []domain.ScopeNode) domain.CoverageReport {
	logger := zerolog.Ctx(ctx)
	report := domain.CoverageReport{
		Total:   len(subscriptions),
		Results: make([]domain.CoverageResult, 0, len(subscriptions)),
	}

	for _, subscription := range subscriptions {
		result := domain.CoverageResult{
			SubscriptionID:   subscription.ID,
			SubscriptionName: subscription.Name,
		}

		matched, err := a.finder.LocateAt(ctx, domain.SubscriptionScope(subscription.ID))
		if err != nil {
			logger.Warn().Err(err).
				Str("subscription", subscription.ID).
				Msg("could not inspect subscription")
			result.Err = err.Error()
		} else {
			result.MatchingAssignments = len(matched)
			result.HasBaseline = len(matched) > 0
		}

		if result.HasBaseline {
			report.WithBaseline++
		} else {
			report.WithoutBaseline = append(report.WithoutBaseline, subscription.ID)
		}
		report.Results = append(report.Results, result)
	}

	report.CoveragePercentage = domain.CoveragePercent(report.WithBaseline, report.Total)
	return report
}
