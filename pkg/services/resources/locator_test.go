package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockInventory struct {
	mock.Mock
}

func (m *MockInventory) QueryByTag(ctx context.Context, subscriptionID, tagName, tagValue string) ([]domain.TaggedResource, error) {
	args := m.Called(ctx, subscriptionID, tagName, tagValue)
	return args.Get(0).([]domain.TaggedResource), args.Error(1)
}

func TestLocatorLocate(t *testing.T) {
	ctx := context.Background()

	t.Run("unions matches across subscriptions", func(t *testing.T) {
		inventory := new(MockInventory)
		inventory.On("QueryByTag", ctx, "s1", "DefenderExempt", "true").
			Return([]domain.TaggedResource{
				{ID: "/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/a", Name: "a", SubscriptionID: "s1"},
			}, nil)
		inventory.On("QueryByTag", ctx, "s2", "DefenderExempt", "true").
			Return([]domain.TaggedResource{
				{ID: "/subscriptions/s2/resourceGroups/rg/providers/Microsoft.Compute/virtualMachines/b", Name: "b", SubscriptionID: "s2"},
			}, nil)

		result := NewLocator(inventory).Locate(ctx, "DefenderExempt", "true", []string{"s1", "s2"})

		assert.Len(t, result, 2)
		inventory.AssertExpectations(t)
	})

	t.Run("failing subscription is skipped, not fatal", func(t *testing.T) {
		inventory := new(MockInventory)
		inventory.On("QueryByTag", ctx, "s1", "DefenderExempt", "true").
			Return([]domain.TaggedResource(nil), errors.New("access denied"))
		inventory.On("QueryByTag", ctx, "s2", "DefenderExempt", "true").
			Return([]domain.TaggedResource{
				{ID: "r2", Name: "b", SubscriptionID: "s2"},
			}, nil)

		result := NewLocator(inventory).Locate(ctx, "DefenderExempt", "true", []string{"s1", "s2"})

		assert.Len(t, result, 1)
		assert.Equal(t, "r2", result[0].ID)
	})

	t.Run("no subscriptions yields no resources", func(t *testing.T) {
		inventory := new(MockInventory)

		result := NewLocator(inventory).Locate(ctx, "DefenderExempt", "true", nil)

		assert.Empty(t, result)
	})
}
