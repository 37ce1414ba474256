package domain

// PairFailure captures one failed (resource, assignment) creation attempt.
type PairFailure struct {
	ResourceID   string
	AssignmentID string
	Reason       string
}

// BatchResult is the accounting record of a bulk exemption creation run.
// Created + Skipped + Failed always equals TotalOperations at completion.
type BatchResult struct {
	Created         int
	Skipped         int
	Failed          int
	TotalOperations int
	Failures        []PairFailure
}
