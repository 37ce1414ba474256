package exemption

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// Store is the policy-store surface the exemption engine depends on.
type Store interface {
	// ListForResource returns the exemptions recorded directly against a
	// resource scope.
	ListForResource(ctx context.Context, resourceID string) ([]domain.Exemption, error)
	// ListAtScope returns the exemptions the provider lists at a subscription
	// or management-group scope. Resource-level exemptions nested below the
	// scope are not reliably included.
	ListAtScope(ctx context.Context, scope string) ([]domain.Exemption, error)
	// GetAssignmentByID re-resolves an assignment immediately before use.
	GetAssignmentByID(ctx context.Context, assignmentID string) (domain.PolicyAssignment, error)
	// Create records a new exemption at the resource scope.
	Create(ctx context.Context, exemption domain.Exemption) error
}
