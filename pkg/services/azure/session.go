package azure

import (
	"fmt"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armpolicy"
)

// Session holds the credential and hands out ARM clients. Policy clients are
// bound to a subscription at construction, so the session caches one client
// set per subscription instead of mutating any ambient "active subscription"
// state.
type Session struct {
	credential          azcore.TokenCredential
	defaultSubscription string
	options             *arm.ClientOptions

	mu      sync.Mutex
	clients map[string]*policyClients
}

type policyClients struct {
	assignments *armpolicy.AssignmentsClient
	exemptions  *armpolicy.ExemptionsClient
}

func NewSession(cfg *Config) *Session {
	return &Session{
		credential:          cfg.Credentials,
		defaultSubscription: cfg.SubscriptionID,
		clients:             make(map[string]*policyClients),
	}
}

func (s *Session) policyClientsFor(subscriptionID string) (*policyClients, error) {
	if subscriptionID == "" {
		subscriptionID = s.defaultSubscription
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if clients, ok := s.clients[subscriptionID]; ok {
		return clients, nil
	}

	assignments, err := armpolicy.NewAssignmentsClient(subscriptionID, s.credential, s.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignments client for %s: %w", subscriptionID, err)
	}
	exemptions, err := armpolicy.NewExemptionsClient(subscriptionID, s.credential, s.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create exemptions client for %s: %w", subscriptionID, err)
	}

	clients := &policyClients{assignments: assignments, exemptions: exemptions}
	s.clients[subscriptionID] = clients
	return clients, nil
}
