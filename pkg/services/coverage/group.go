package coverage

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/de-tools/policy-atlas/pkg/services/scope"
)

// GroupAuditor expands a management group and audits every subscription
// beneath it.
type GroupAuditor struct {
	resolver *scope.Resolver
	auditor  *Auditor
}

func NewGroupAuditor(resolver *scope.Resolver, finder AssignmentFinder) *GroupAuditor {
	return &GroupAuditor{
		resolver: resolver,
		auditor:  NewAuditor(finder),
	}
}

func (g *GroupAuditor) AuditGroup(ctx context.Context, groupID string) (domain.CoverageReport, error) {
	subs, err := g.resolver.Subscriptions(ctx, groupID)
	if err != nil {
		return domain.CoverageReport{}, err
	}
	return g.auditor.Audit(ctx, subs), nil
}
