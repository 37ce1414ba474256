package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/managementgroups/armmanagementgroups"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// HierarchyExplorer materializes a management-group tree from the flat
// descendants listing of the management groups API.
type HierarchyExplorer struct {
	client *armmanagementgroups.Client
}

func (s *Session) Hierarchy() (*HierarchyExplorer, error) {
	client, err := armmanagementgroups.NewClient(s.credential, s.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create management groups client: %w", err)
	}
	return &HierarchyExplorer{client: client}, nil
}

func (h *HierarchyExplorer) GetHierarchy(ctx context.Context, groupID string) (domain.ScopeNode, error) {
	root := domain.ScopeNode{
		Kind: domain.ScopeKindManagementGroup,
		ID:   groupID,
		Name: groupID,
	}

	// The descendants listing returns every node below the group with a
	// pointer to its parent; the tree is rebuilt from those links.
	children := make(map[string][]domain.ScopeNode)

	pager := h.client.NewGetDescendantsPager(groupID, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return domain.ScopeNode{}, fmt.Errorf("failed to list descendants of %q: %w", groupID, err)
		}
		for _, descendant := range page.Value {
			if descendant == nil || descendant.Name == nil {
				continue
			}
			node := domain.ScopeNode{
				Kind: descendantKind(descendant),
				ID:   *descendant.Name,
				Name: *descendant.Name,
			}
			parent := groupID
			if descendant.Properties != nil {
				if descendant.Properties.DisplayName != nil {
					node.Name = *descendant.Properties.DisplayName
				}
				if descendant.Properties.Parent != nil && descendant.Properties.Parent.ID != nil {
					parent = lastSegment(*descendant.Properties.Parent.ID)
				}
			}
			children[parent] = append(children[parent], node)
		}
	}

	return attachChildren(root, children, map[string]bool{}), nil
}

func attachChildren(node domain.ScopeNode, children map[string][]domain.ScopeNode, seen map[string]bool) domain.ScopeNode {
	if node.Kind != domain.ScopeKindManagementGroup || seen[node.ID] {
		return node
	}
	seen[node.ID] = true
	for _, child := range children[node.ID] {
		node.Children = append(node.Children, attachChildren(child, children, seen))
	}
	return node
}

func descendantKind(descendant *armmanagementgroups.DescendantInfo) domain.ScopeKind {
	if descendant.Type != nil && strings.HasSuffix(strings.ToLower(*descendant.Type), "subscriptions") {
		return domain.ScopeKindSubscription
	}
	return domain.ScopeKindManagementGroup
}

func lastSegment(id string) string {
	parts := strings.Split(id, "/")
	return parts[len(parts)-1]
}
