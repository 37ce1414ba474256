package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
)

// Reporter renders result records as console text. It is the only layer that
// formats anything; the services return structured data.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (r *Reporter) HandleDiscovery(resources []domain.TaggedResource, assignments []domain.PolicyAssignment) error {
	tmpl := `
Baseline assignments ({{len .Assignments}}):
{{range .Assignments}}- {{.Name}}{{if .DisplayName}} ({{.DisplayName}}){{end}}
{{end}}
Tagged resources ({{len .Resources}}):
{{range .Resources}}- {{.Name}} [{{.Type}}] in {{.SubscriptionID}}
{{end}}`
	return r.render(tmpl, struct {
		Resources   []domain.TaggedResource
		Assignments []domain.PolicyAssignment
	}{resources, assignments})
}

func (r *Reporter) HandleQuota(state domain.QuotaState) error {
	tmpl := `
Quota assessment for {{.Scope}}
Current: {{.CurrentCount}}  Planned: {{.PlannedCount}}  Projected: {{.ProjectedTotal}}
Limit: {{.HardLimit}} (safety threshold {{.SafetyThreshold}})
Warning level: {{.WarningLevel}}{{if not .WithinLimits}}
Projected total is not safe, creation will not proceed.{{end}}
`
	return r.render(tmpl, state)
}

func (r *Reporter) HandleBatch(result domain.BatchResult) error {
	tmpl := `
Exemption run complete: {{.TotalOperations}} operations
Created: {{.Created}}  Skipped: {{.Skipped}}  Failed: {{.Failed}}
{{range .Failures}}- FAILED {{.ResourceID}} x {{.AssignmentID}}: {{.Reason}}
{{end}}`
	return r.render(tmpl, result)
}

func (r *Reporter) HandleCoverage(report domain.CoverageReport) error {
	tmpl := `
Baseline coverage: {{.WithBaseline}}/{{.Total}} subscriptions ({{printf "%.1f" .CoveragePercentage}}%)
{{range .Results}}- {{.SubscriptionName}} ({{.SubscriptionID}}): {{if .HasBaseline}}covered ({{.MatchingAssignments}} assignments){{else if .Err}}unreadable: {{.Err}}{{else}}NOT covered{{end}}
{{end}}`
	return r.render(tmpl, report)
}

func (r *Reporter) render(tmpl string, data any) error {
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return t.Execute(r.writer, data)
}
