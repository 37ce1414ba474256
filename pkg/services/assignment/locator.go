package assignment

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// PolicyStore reads policy assignments attached at a scope.
type PolicyStore interface {
	ListAssignments(ctx context.Context, scope string) ([]domain.PolicyAssignment, error)
}

type Locator struct {
	store PolicyStore
}

func NewLocator(store PolicyStore) *Locator {
	return &Locator{store: store}
}

// LocateAt returns the baseline-relevant assignments attached at a single
// scope. Assignments that match the heuristic but carry no resolvable id are
// dropped with a diagnostic; they can never be used for exemption creation.
func (l *Locator) LocateAt(ctx context.Context, scope string) ([]domain.PolicyAssignment, error) {
	candidates, err := l.store.ListAssignments(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments at %q: %w", scope, err)
	}

	logger := zerolog.Ctx(ctx)
	var matched []domain.PolicyAssignment
	for _, candidate := range candidates {
		if !IsBaseline(candidate.DisplayName, candidate.Name) {
			continue
		}
		if candidate.ID == "" {
			logger.Warn().
				Str("scope", scope).
				Str("assignment", candidate.Name).
				Msg("baseline assignment has no resolvable id, dropping")
			continue
		}
		matched = append(matched, candidate)
	}
	return matched, nil
}

// Locate aggregates baseline assignments across the given scopes. A failure
// on one scope is logged and the scope is skipped; the remaining scopes still
// contribute. Assignments seen at more than one scope are returned once.
func (l *Locator) Locate(ctx context.Context, scopes []string) []domain.PolicyAssignment {
	logger := zerolog.Ctx(ctx)
	seen := make(map[string]bool)
	var result []domain.PolicyAssignment

	for _, scope := range scopes {
		matched, err := l.LocateAt(ctx, scope)
		if err != nil {
			logger.Warn().Err(err).Str("scope", scope).Msg("skipping unreadable scope")
			continue
		}
		for _, a := range matched {
			key := strings.ToLower(a.ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, a)
		}
	}
	return result
}

// FilterByName narrows assignments to one explicitly requested by name or
// display name (case-insensitive).
func FilterByName(assignments []domain.PolicyAssignment, name string) ([]domain.PolicyAssignment, error) {
	var matched []domain.PolicyAssignment
	for _, a := range assignments {
		if strings.EqualFold(a.Name, name) || strings.EqualFold(a.DisplayName, name) {
			matched = append(matched, a)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrAssignmentNotFound, name)
	}
	return matched, nil
}
