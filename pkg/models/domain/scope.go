package domain

import "fmt"

type ScopeKind string

const (
	ScopeKindManagementGroup ScopeKind = "managementGroup"
	ScopeKindSubscription    ScopeKind = "subscription"
)

// ScopeNode is one node of the governance hierarchy: either a management
// group with children or a leaf subscription.
type ScopeNode struct {
	Kind     ScopeKind
	ID       string
	Name     string
	Children []ScopeNode
}

// SubscriptionScope renders the ARM scope string for a subscription id.
func SubscriptionScope(subscriptionID string) string {
	return fmt.Sprintf("/subscriptions/%s", subscriptionID)
}

// ManagementGroupScope renders the ARM scope string for a management group id.
func ManagementGroupScope(groupID string) string {
	return fmt.Sprintf("/providers/Microsoft.Management/managementGroups/%s", groupID)
}
