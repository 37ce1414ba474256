package scope

import (
	"context"
	"errors"
	"testing"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockHierarchyExplorer struct {
	mock.Mock
}

func (m *MockHierarchyExplorer) GetHierarchy(ctx context.Context, groupID string) (domain.ScopeNode, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(domain.ScopeNode), args.Error(1)
}

func sub(id string) domain.ScopeNode {
	return domain.ScopeNode{Kind: domain.ScopeKindSubscription, ID: id, Name: "sub-" + id}
}

func group(id string, children ...domain.ScopeNode) domain.ScopeNode {
	return domain.ScopeNode{Kind: domain.ScopeKindManagementGroup, ID: id, Children: children}
}

func TestExpand(t *testing.T) {
	t.Run("flat group yields exactly its subscriptions", func(t *testing.T) {
		root := group("root", sub("s1"), sub("s2"))

		ids := SubscriptionIDs(root)

		assert.Equal(t, []string{"s1", "s2"}, ids)
	})

	t.Run("nested groups are flattened", func(t *testing.T) {
		root := group("root",
			group("platform", sub("s1")),
			group("landing-zones",
				group("corp", sub("s2"), sub("s3")),
			),
			sub("s4"),
		)

		ids := SubscriptionIDs(root)

		assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, ids)
	})

	t.Run("duplicate subscription ids collapse to one", func(t *testing.T) {
		root := group("root",
			group("a", sub("s1")),
			group("b", sub("s1")),
		)

		assert.Equal(t, []string{"s1"}, SubscriptionIDs(root))
	})

	t.Run("cyclic node ids do not loop", func(t *testing.T) {
		// A group that names itself as a child; the visited set must stop it.
		child := group("root", sub("s1"))
		root := group("root", sub("s1"), child)

		assert.Equal(t, []string{"s1"}, SubscriptionIDs(root))
	})

	t.Run("group with no subscription descendants yields empty set", func(t *testing.T) {
		root := group("root", group("empty-a"), group("empty-b"))

		assert.Empty(t, SubscriptionIDs(root))
	})

	t.Run("subscription nodes keep their display names", func(t *testing.T) {
		root := group("root", sub("s1"))

		nodes := Expand(root)

		assert.Len(t, nodes, 1)
		assert.Equal(t, "sub-s1", nodes[0].Name)
	})
}

func TestResolverSubscriptions(t *testing.T) {
	ctx := context.Background()

	t.Run("expands the tree returned by the explorer", func(t *testing.T) {
		explorer := new(MockHierarchyExplorer)
		explorer.On("GetHierarchy", ctx, "contoso").
			Return(group("contoso", sub("s1"), group("inner", sub("s2"))), nil)

		subs, err := NewResolver(explorer).Subscriptions(ctx, "contoso")

		assert.NoError(t, err)
		assert.Len(t, subs, 2)
		explorer.AssertExpectations(t)
	})

	t.Run("propagates explorer failure", func(t *testing.T) {
		explorer := new(MockHierarchyExplorer)
		explorer.On("GetHierarchy", ctx, "contoso").
			Return(domain.ScopeNode{}, errors.New("access denied"))

		_, err := NewResolver(explorer).Subscriptions(ctx, "contoso")

		assert.ErrorContains(t, err, "contoso")
	})
}
