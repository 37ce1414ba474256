package exemption

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// GuardSettings define the provider limit and the buffer kept below it.
type GuardSettings struct {
	HardLimit       int
	SafetyThreshold int
}

func DefaultGuardSettings() GuardSettings {
	return GuardSettings{
		HardLimit:       1000,
		SafetyThreshold: 950,
	}
}

// Guard computes current + planned exemption counts against provider limits
// and classifies the risk of a creation run.
type Guard struct {
	store    Store
	settings GuardSettings
}

func NewGuard(store Store, settings GuardSettings) *Guard {
	if settings.HardLimit <= 0 {
		settings = DefaultGuardSettings()
	}
	return &Guard{store: store, settings: settings}
}

// Assess computes the quota state for creating plannedCount exemptions at a
// scope. When a resource list is given, the current count is the exact
// per-resource tally; the provider's scope-level listing does not reliably
// include resource-level exemptions nested below the scope, so the coarser
// scope count is used only when no resource list is available.
//
// Any query failure yields a degraded state with counts of -1 and an
// Unknown warning level, which callers must treat as over the limit.
func (g *Guard) Assess(ctx context.Context, scope string, plannedCount int, resources []domain.TaggedResource) domain.QuotaState {
	currentCount, err := g.currentCount(ctx, scope, resources)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("scope", scope).
			Msg("quota assessment degraded, could not count existing exemptions")
		return domain.QuotaState{
			Scope:           scope,
			CurrentCount:    -1,
			PlannedCount:    -1,
			ProjectedTotal:  -1,
			HardLimit:       g.settings.HardLimit,
			SafetyThreshold: g.settings.SafetyThreshold,
			WithinLimits:    false,
			WarningLevel:    domain.WarningUnknown,
		}
	}

	projected := currentCount + plannedCount
	return domain.QuotaState{
		Scope:           scope,
		CurrentCount:    currentCount,
		PlannedCount:    plannedCount,
		ProjectedTotal:  projected,
		HardLimit:       g.settings.HardLimit,
		SafetyThreshold: g.settings.SafetyThreshold,
		WithinLimits:    projected <= g.settings.SafetyThreshold,
		WarningLevel:    g.classify(projected),
	}
}

// AssessScope reports the standing quota state at a scope without any
// planned creations. Used by the read-only web surface.
func (g *Guard) AssessScope(ctx context.Context, scope string) domain.QuotaState {
	return g.Assess(ctx, scope, 0, nil)
}

func (g *Guard) currentCount(ctx context.Context, scope string, resources []domain.TaggedResource) (int, error) {
	if len(resources) == 0 {
		existing, err := g.store.ListAtScope(ctx, scope)
		if err != nil {
			return 0, err
		}
		return len(existing), nil
	}

	total := 0
	for _, resource := range resources {
		existing, err := g.store.ListForResource(ctx, resource.ID)
		if err != nil {
			return 0, err
		}
		total += len(existing)
	}
	return total, nil
}

func (g *Guard) classify(projected int) domain.WarningLevel {
	switch {
	case projected > g.settings.HardLimit:
		return domain.WarningCritical
	case projected > g.settings.SafetyThreshold:
		return domain.WarningHigh
	case float64(projected) > 0.8*float64(g.settings.SafetyThreshold):
		return domain.WarningMedium
	default:
		return domain.WarningNone
	}
}
