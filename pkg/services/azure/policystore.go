package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// PolicyStore adapts the ARM policy API to the assignment and exemption
// service interfaces.
type PolicyStore struct {
	session *Session
}

func (s *Session) PolicyStore() *PolicyStore {
	return &PolicyStore{session: s}
}

func (p *PolicyStore) ListAssignments(ctx context.Context, scope string) ([]domain.PolicyAssignment, error) {
	target, err := parseScope(scope)
	if err != nil {
		return nil, err
	}

	clients, err := p.session.policyClientsFor(target.subscriptionID)
	if err != nil {
		return nil, err
	}

	var result []domain.PolicyAssignment
	collect := func(assignments []*armpolicy.Assignment) {
		for _, a := range assignments {
			if a == nil {
				continue
			}
			result = append(result, mapAssignment(a))
		}
	}

	if target.managementGroup != "" {
		pager := clients.assignments.NewListForManagementGroupPager(target.managementGroup, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list assignments for management group %q: %w", target.managementGroup, err)
			}
			collect(page.Value)
		}
		return result, nil
	}

	pager := clients.assignments.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments for subscription %q: %w", target.subscriptionID, err)
		}
		collect(page.Value)
	}
	return result, nil
}

func (p *PolicyStore) GetAssignmentByID(ctx context.Context, assignmentID string) (domain.PolicyAssignment, error) {
	clients, err := p.session.policyClientsFor(subscriptionOf(assignmentID))
	if err != nil {
		return domain.PolicyAssignment{}, err
	}

	resp, err := clients.assignments.GetByID(ctx, assignmentID, nil)
	if err != nil {
		return domain.PolicyAssignment{}, fmt.Errorf("failed to resolve assignment %q: %w", assignmentID, err)
	}
	return mapAssignment(&resp.Assignment), nil
}

func (p *PolicyStore) ListForResource(ctx context.Context, resourceID string) ([]domain.Exemption, error) {
	rid, err := arm.ParseResourceID(resourceID)
	if err != nil {
		return nil, fmt.Errorf("invalid resource id %q: %w", resourceID, err)
	}

	clients, err := p.session.policyClientsFor(rid.SubscriptionID)
	if err != nil {
		return nil, err
	}

	parentPath, resourceType := splitProviderChain(resourceID)
	pager := clients.exemptions.NewListForResourcePager(
		rid.ResourceGroupName,
		rid.ResourceType.Namespace,
		parentPath,
		resourceType,
		rid.Name,
		nil,
	)

	var result []domain.Exemption
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list exemptions for %q: %w", resourceID, err)
		}
		for _, e := range page.Value {
			if e == nil {
				continue
			}
			result = append(result, mapExemption(e))
		}
	}
	return result, nil
}

func (p *PolicyStore) ListAtScope(ctx context.Context, scope string) ([]domain.Exemption, error) {
	target, err := parseScope(scope)
	if err != nil {
		return nil, err
	}

	clients, err := p.session.policyClientsFor(target.subscriptionID)
	if err != nil {
		return nil, err
	}

	var result []domain.Exemption
	collect := func(exemptions []*armpolicy.Exemption) {
		for _, e := range exemptions {
			if e == nil {
				continue
			}
			result = append(result, mapExemption(e))
		}
	}

	if target.managementGroup != "" {
		pager := clients.exemptions.NewListForManagementGroupPager(target.managementGroup, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list exemptions for management group %q: %w", target.managementGroup, err)
			}
			collect(page.Value)
		}
		return result, nil
	}

	pager := clients.exemptions.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list exemptions for subscription %q: %w", target.subscriptionID, err)
		}
		collect(page.Value)
	}
	return result, nil
}

func (p *PolicyStore) Create(ctx context.Context, exemption domain.Exemption) error {
	clients, err := p.session.policyClientsFor(subscriptionOf(exemption.Scope))
	if err != nil {
		return err
	}

	category := armpolicy.ExemptionCategoryMitigated
	if exemption.Category == domain.CategoryWaiver {
		category = armpolicy.ExemptionCategoryWaiver
	}

	payload := armpolicy.Exemption{
		Properties: &armpolicy.ExemptionProperties{
			ExemptionCategory:  &category,
			PolicyAssignmentID: to.Ptr(exemption.PolicyAssignmentID),
			DisplayName:        to.Ptr(exemption.DisplayName),
			Description:        to.Ptr(exemption.Description),
			ExpiresOn:          to.Ptr(exemption.ExpiresOn),
		},
	}

	_, err = clients.exemptions.CreateOrUpdate(ctx, exemption.Scope, exemption.Name, payload, nil)
	if err != nil {
		return fmt.Errorf("failed to create exemption %q at %q: %w", exemption.Name, exemption.Scope, err)
	}
	return nil
}

func mapAssignment(a *armpolicy.Assignment) domain.PolicyAssignment {
	assignment := domain.PolicyAssignment{
		ID:   deref(a.ID),
		Name: deref(a.Name),
	}
	if a.Properties != nil {
		assignment.DisplayName = deref(a.Properties.DisplayName)
		assignment.DefinitionID = deref(a.Properties.PolicyDefinitionID)
		assignment.Scope = deref(a.Properties.Scope)
	}
	return assignment
}

func mapExemption(e *armpolicy.Exemption) domain.Exemption {
	exemption := domain.Exemption{
		Name: deref(e.Name),
	}
	if e.Properties != nil {
		exemption.PolicyAssignmentID = deref(e.Properties.PolicyAssignmentID)
		exemption.DisplayName = deref(e.Properties.DisplayName)
		exemption.Description = deref(e.Properties.Description)
		if e.Properties.ExemptionCategory != nil {
			exemption.Category = domain.ExemptionCategory(*e.Properties.ExemptionCategory)
		}
		if e.Properties.ExpiresOn != nil {
			exemption.ExpiresOn = *e.Properties.ExpiresOn
		}
	}
	return exemption
}

// splitProviderChain breaks the provider section of a resource id into the
// parent resource path and the final resource type, as the exemptions list
// API wants them. For a top-level resource the parent path is empty.
func splitProviderChain(resourceID string) (parentPath, resourceType string) {
	idx := strings.Index(strings.ToLower(resourceID), "/providers/")
	if idx < 0 {
		return "", ""
	}
	segments := strings.Split(strings.Trim(resourceID[idx+len("/providers/"):], "/"), "/")
	// segments: namespace, then alternating type/name pairs.
	if len(segments) < 3 {
		return "", ""
	}
	pairs := segments[1:]
	if len(pairs)%2 != 0 {
		pairs = pairs[:len(pairs)-1]
	}
	resourceType = pairs[len(pairs)-2]
	parentPath = strings.Join(pairs[:len(pairs)-2], "/")
	return parentPath, resourceType
}

func subscriptionOf(id string) string {
	rest := strings.TrimPrefix(id, "/subscriptions/")
	if rest == id {
		return ""
	}
	return strings.SplitN(rest, "/", 2)[0]
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
