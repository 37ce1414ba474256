package exemption

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestRepositoryExistingFor(t *testing.T) {
	ctx := context.Background()
	resourceID := "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/a"

	t.Run("returns what the store lists", func(t *testing.T) {
		store := new(MockStore)
		store.On("ListForResource", ctx, resourceID).Return([]domain.Exemption{
			{Name: "exempt-a-20260101", PolicyAssignmentID: "id-1"},
		}, nil)

		existing := NewRepository(store).ExistingFor(ctx, resourceID)

		assert.Len(t, existing, 1)
	})

	t.Run("query failure reads as no exemptions", func(t *testing.T) {
		store := new(MockStore)
		store.On("ListForResource", ctx, resourceID).
			Return([]domain.Exemption(nil), errors.New("scope not found"))

		existing := NewRepository(store).ExistingFor(ctx, resourceID)

		assert.Empty(t, existing)
	})
}
