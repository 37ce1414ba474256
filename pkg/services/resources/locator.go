package resources

import (
	"context"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Inventory queries resources by tag within a single subscription.
type Inventory interface {
	QueryByTag(ctx context.Context, subscriptionID, tagName, tagValue string) ([]domain.TaggedResource, error)
}

type Locator struct {
	inventory Inventory
}

func NewLocator(inventory Inventory) *Locator {
	return &Locator{inventory: inventory}
}

// Locate returns the union of tag-matching resources across the given
// subscriptions. A subscription the inventory cannot answer for is logged
// and skipped; the rest still contribute.
func (l *Locator) Locate(ctx context.Context, tagName, tagValue string, subscriptionIDs []string) []domain.TaggedResource {
	logger := zerolog.Ctx(ctx)
	var result []domain.TaggedResource

	for _, subscriptionID := range subscriptionIDs {
		matched, err := l.inventory.QueryByTag(ctx, subscriptionID, tagName, tagValue)
		if err != nil {
			logger.Warn().Err(err).
				Str("subscription", subscriptionID).
				Msg("skipping unreachable subscription")
			continue
		}
		result = append(result, matched...)
	}
	return result
}
