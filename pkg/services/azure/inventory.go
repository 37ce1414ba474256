package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resourcegraph/armresourcegraph"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// Inventory queries tagged resources through Azure Resource Graph.
type Inventory struct {
	client *armresourcegraph.Client
}

func (s *Session) Inventory() (*Inventory, error) {
	client, err := armresourcegraph.NewClient(s.credential, s.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource graph client: %w", err)
	}
	return &Inventory{client: client}, nil
}

func (i *Inventory) QueryByTag(ctx context.Context, subscriptionID, tagName, tagValue string) ([]domain.TaggedResource, error) {
	query := fmt.Sprintf(
		"Resources | where tags['%s'] =~ '%s' | project id, name, type, subscriptionId",
		escapeKQL(tagName), escapeKQL(tagValue),
	)

	format := armresourcegraph.ResultFormatObjectArray
	request := armresourcegraph.QueryRequest{
		Query:         to.Ptr(query),
		Subscriptions: []*string{to.Ptr(subscriptionID)},
		Options: &armresourcegraph.QueryRequestOptions{
			ResultFormat: &format,
		},
	}

	resp, err := i.client.Resources(ctx, request, nil)
	if err != nil {
		return nil, fmt.Errorf("resource graph query failed for subscription %q: %w", subscriptionID, err)
	}

	rows, ok := resp.Data.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected resource graph payload for subscription %q", subscriptionID)
	}

	result := make([]domain.TaggedResource, 0, len(rows))
	for _, row := range rows {
		fields, ok := row.(map[string]any)
		if !ok {
			continue
		}
		result = append(result, domain.TaggedResource{
			ID:             stringField(fields, "id"),
			Name:           stringField(fields, "name"),
			Type:           stringField(fields, "type"),
			SubscriptionID: stringField(fields, "subscriptionId"),
		})
	}
	return result, nil
}

func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return value
	}
	return ""
}

func escapeKQL(value string) string {
	return strings.ReplaceAll(value, "'", "\\'")
}
