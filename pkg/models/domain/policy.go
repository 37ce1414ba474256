package domain

// PolicyAssignment is an attached rule-set enforcing compliance checks
// across a scope. An assignment with an empty ID is unusable for exemption
// creation and is dropped during discovery.
type PolicyAssignment struct {
	ID           string
	Name         string
	DisplayName  string
	DefinitionID string
	Scope        string
}

// TaggedResource is an immutable snapshot of a resource discovered through
// the tag predicate at query time.
type TaggedResource struct {
	ID             string
	Name           string
	Type           string
	SubscriptionID string
}
