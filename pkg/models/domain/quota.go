package domain

type WarningLevel string

const (
	WarningNone     WarningLevel = "None"
	WarningMedium   WarningLevel = "Medium"
	WarningHigh     WarningLevel = "High"
	WarningCritical WarningLevel = "Critical"
	// WarningUnknown marks a degraded assessment where the current count
	// could not be established; callers must treat it as over the limit.
	WarningUnknown WarningLevel = "Unknown"
)

// QuotaState is the pre-flight risk assessment for an exemption creation run.
type QuotaState struct {
	Scope           string
	CurrentCount    int
	PlannedCount    int
	ProjectedTotal  int
	HardLimit       int
	SafetyThreshold int
	WithinLimits    bool
	WarningLevel    WarningLevel
}
