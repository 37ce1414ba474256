package assignment

import "strings"

// Markers for the well-known security baseline initiative (MCSB and its
// earlier names). Matching is case-insensitive substring matching.
var baselineNameMarkers = []string{
	"securitycenterbuiltin",
	"asc",
	"azure_security_baseline",
}

// IsBaseline reports whether an assignment looks like the security baseline
// initiative. This is a documented heuristic, not a guarantee: it matches on
// the display name and assignment name only.
func IsBaseline(displayName, name string) bool {
	display := strings.ToLower(displayName)
	lowered := strings.ToLower(name)

	if strings.Contains(display, "microsoft cloud security benchmark") {
		return true
	}
	if strings.Contains(display, "azure security baseline") {
		return true
	}
	for _, marker := range baselineNameMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return strings.Contains(display, "security") && strings.Contains(display, "benchmark")
}
