package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	t.Run("subscription scope", func(t *testing.T) {
		target, err := parseScope("/subscriptions/1111-2222")
		assert.NoError(t, err)
		assert.Equal(t, "1111-2222", target.subscriptionID)
		assert.Empty(t, target.managementGroup)
	})

	t.Run("management group scope", func(t *testing.T) {
		target, err := parseScope("/providers/Microsoft.Management/managementGroups/contoso")
		assert.NoError(t, err)
		assert.Equal(t, "contoso", target.managementGroup)
	})

	t.Run("anything else is rejected", func(t *testing.T) {
		_, err := parseScope("/tenants/x")
		assert.Error(t, err)
	})
}

func TestSplitProviderChain(t *testing.T) {
	t.Run("top-level resource", func(t *testing.T) {
		parent, resourceType := splitProviderChain(
			"/subscriptions/s/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/acct")
		assert.Empty(t, parent)
		assert.Equal(t, "storageAccounts", resourceType)
	})

	t.Run("nested resource", func(t *testing.T) {
		parent, resourceType := splitProviderChain(
			"/subscriptions/s/resourceGroups/rg/providers/Microsoft.Sql/servers/srv/databases/db")
		assert.Equal(t, "servers/srv", parent)
		assert.Equal(t, "databases", resourceType)
	})
}

func TestSubscriptionOf(t *testing.T) {
	assert.Equal(t, "s1", subscriptionOf("/subscriptions/s1/resourceGroups/rg/providers/Microsoft.Storage/storageAccounts/a"))
	assert.Equal(t, "", subscriptionOf("/providers/Microsoft.Management/managementGroups/root/providers/Microsoft.Authorization/policyAssignments/x"))
}
