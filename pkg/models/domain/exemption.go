package domain

import "time"

type ExemptionCategory string

const (
	CategoryWaiver    ExemptionCategory = "Waiver"
	CategoryMitigated ExemptionCategory = "Mitigated"
)

const (
	// DefaultWaiverDays is the default validity for accepted-risk exemptions.
	DefaultWaiverDays = 90
	// DefaultMitigatedDays is the default validity for exemptions backed by
	// compensating controls.
	DefaultMitigatedDays = 365
)

// DefaultExpiryDays returns the category default validity in days.
func DefaultExpiryDays(category ExemptionCategory) int {
	if category == CategoryWaiver {
		return DefaultWaiverDays
	}
	return DefaultMitigatedDays
}

// Exemption excludes one resource from one policy assignment. Scope is always
// a resource-level identifier, never a management group.
type Exemption struct {
	Name               string
	Scope              string
	PolicyAssignmentID string
	Category           ExemptionCategory
	DisplayName        string
	Description        string
	ExpiresOn          time.Time
}
