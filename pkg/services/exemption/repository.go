package exemption

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Repository reads existing exemptions for deduplication.
type Repository struct {
	store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// ExistingFor returns the exemptions recorded against a resource. A query
// failure is logged and treated as "none exist": the creation path prefers
// re-attempting a create over dropping the resource. The provider listing
// for a scope that has never held exemptions also errors, so the two cases
// are not distinguishable here.
func (r *Repository) ExistingFor(ctx context.Context, resourceID string) []domain.Exemption {
	existing, err := r.store.ListForResource(ctx, resourceID)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).
			Str("resource", resourceID).
			Msg("could not list existing exemptions, assuming none")
		return nil
	}
	return existing
}
