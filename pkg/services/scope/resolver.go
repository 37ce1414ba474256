package scope

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// HierarchyExplorer materializes the scope tree under a management group.
type HierarchyExplorer interface {
	GetHierarchy(ctx context.Context, groupID string) (domain.ScopeNode, error)
}

type Resolver struct {
	explorer HierarchyExplorer
}

func NewResolver(explorer HierarchyExplorer) *Resolver {
	return &Resolver{explorer: explorer}
}

// Subscriptions expands a management group into the flat set of subscription
// nodes beneath it. An empty result is not an error.
func (r *Resolver) Subscriptions(ctx context.Context, groupID string) ([]domain.ScopeNode, error) {
	root, err := r.explorer.GetHierarchy(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to expand management group %q: %w", groupID, err)
	}
	return Expand(root), nil
}

// Expand walks the tree with an explicit worklist and returns every
// subscription node exactly once, ordered by id. A visited set guards
// against repeated or cyclic node ids in malformed input.
func Expand(root domain.ScopeNode) []domain.ScopeNode {
	visited := make(map[string]bool)
	subs := make(map[string]domain.ScopeNode)

	worklist := []domain.ScopeNode{root}
	for len(worklist) > 0 {
		node := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if visited[node.ID] {
			continue
		}
		visited[node.ID] = true

		switch node.Kind {
		case domain.ScopeKindSubscription:
			subs[node.ID] = node
		case domain.ScopeKindManagementGroup:
			worklist = append(worklist, node.Children...)
		}
	}

	result := make([]domain.ScopeNode, 0, len(subs))
	for _, node := range subs {
		result = append(result, node)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// SubscriptionIDs is a convenience projection of Expand.
func SubscriptionIDs(root domain.ScopeNode) []string {
	nodes := Expand(root)
	ids := make([]string, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	return ids
}
