package azure

import (
	"fmt"
	"strings"
)

const managementGroupPrefix = "/providers/Microsoft.Management/managementGroups/"

type scopeTarget struct {
	subscriptionID  string
	managementGroup string
}

// parseScope splits an ARM scope string into its target. Only subscription
// and management-group scopes are valid query scopes here; resources carry
// their subscription in their own id.
func parseScope(scope string) (scopeTarget, error) {
	switch {
	case strings.HasPrefix(scope, managementGroupPrefix):
		return scopeTarget{managementGroup: strings.TrimPrefix(scope, managementGroupPrefix)}, nil
	case strings.HasPrefix(scope, "/subscriptions/"):
		rest := strings.TrimPrefix(scope, "/subscriptions/")
		return scopeTarget{subscriptionID: strings.SplitN(rest, "/", 2)[0]}, nil
	default:
		return scopeTarget{}, fmt.Errorf("unsupported scope %q", scope)
	}
}
