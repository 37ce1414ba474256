package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/policy-atlas/pkg/models/domain"
	"github.com/de-tools/policy-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/policy-atlas/pkg/services/assignment"
	"github.com/de-tools/policy-atlas/pkg/services/azure"
	"github.com/de-tools/policy-atlas/pkg/services/coverage"
	"github.com/de-tools/policy-atlas/pkg/services/exemption"
	"github.com/de-tools/policy-atlas/pkg/services/resources"
	"github.com/de-tools/policy-atlas/pkg/services/scope"
	"github.com/de-tools/policy-atlas/pkg/services/settings"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// SessionFactory builds an authenticated Azure session for a profile.
type SessionFactory func(profile string) (*azure.Session, error)

type ExemptionsCmd struct {
	profile       string
	settingsPath  string
	subscription  string
	group         string
	tagName       string
	tagValue      string
	category      string
	expiresInDays int
	listOnly      bool
	create        bool
	checkCoverage bool
	includeChild  bool
	assignment    string

	sessions SessionFactory
	reporter *export.Reporter
}

func NewExemptionsCmd(sessions SessionFactory, reporter *export.Reporter) *cobra.Command {
	ec := &ExemptionsCmd{sessions: sessions, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "exemptions",
		Short: "Reconcile policy exemptions for tagged resources",
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.profile, "profile", "", "Azure config profile to use")
	cmd.Flags().StringVar(&ec.settingsPath, "settings", "", "Path to an optional settings file")
	cmd.Flags().StringVar(&ec.subscription, "subscription", "", "Target subscription id")
	cmd.Flags().StringVar(&ec.group, "management-group", "", "Target management group id")
	cmd.Flags().StringVar(&ec.tagName, "tag-name", "DefenderExempt", "Tag name marking exemption candidates")
	cmd.Flags().StringVar(&ec.tagValue, "tag-value", "true", "Tag value marking exemption candidates")
	cmd.Flags().StringVar(&ec.category, "category", string(domain.CategoryMitigated), "Exemption category (Waiver or Mitigated)")
	cmd.Flags().IntVar(&ec.expiresInDays, "expires-in-days", 0, "Days until expiry (0 uses the category default)")
	cmd.Flags().BoolVar(&ec.listOnly, "list-only", false, "Only list discovered resources and assignments")
	cmd.Flags().BoolVar(&ec.create, "create", false, "Create missing exemptions")
	cmd.Flags().BoolVar(&ec.checkCoverage, "check-coverage", false, "Audit baseline coverage instead of reconciling")
	cmd.Flags().BoolVar(&ec.includeChild, "include-child-subscriptions", false, "Also query each child subscription for assignments")
	cmd.Flags().StringVar(&ec.assignment, "assignment-name", "", "Only target the named policy assignment")

	return cmd
}

func (ec *ExemptionsCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if err := ec.validate(); err != nil {
		return err
	}
	category := domain.ExemptionCategory(ec.category)

	cfg, err := settings.Load(ec.settingsPath)
	if err != nil {
		return err
	}

	session, err := ec.sessions(ec.profile)
	if err != nil {
		return fmt.Errorf("failed to open Azure session: %w", err)
	}

	store := session.PolicyStore()
	locator := assignment.NewLocator(store)

	subs, scopes, rootScope, err := ec.resolveScopes(ctx, session)
	if err != nil {
		return err
	}

	if ec.checkCoverage {
		report := coverage.NewAuditor(locator).Audit(ctx, subs)
		return ec.reporter.HandleCoverage(report)
	}

	assignments := locator.Locate(ctx, scopes)
	if ec.assignment != "" {
		assignments, err = assignment.FilterByName(assignments, ec.assignment)
		if err != nil {
			return err
		}
	}
	if len(assignments) == 0 {
		return domain.ErrNoBaselineAssignments
	}

	inventory, err := session.Inventory()
	if err != nil {
		return err
	}
	tagged := resources.NewLocator(inventory).Locate(ctx, ec.tagName, ec.tagValue, subscriptionIDs(subs))
	if len(tagged) == 0 {
		logger.Info().
			Str("tag", ec.tagName).
			Str("value", ec.tagValue).
			Msg("no tagged resources found, nothing to do")
		return nil
	}

	if !ec.create || ec.listOnly {
		return ec.reporter.HandleDiscovery(tagged, assignments)
	}

	return ec.reconcile(ctx, store, tagged, assignments, category, rootScope, cfg)
}

func (ec *ExemptionsCmd) reconcile(
	ctx context.Context,
	store *azure.PolicyStore,
	tagged []domain.TaggedResource,
	assignments []domain.PolicyAssignment,
	category domain.ExemptionCategory,
	rootScope string,
	cfg settings.Settings,
) error {
	planned := len(tagged) * len(assignments)

	guard := exemption.NewGuard(store, cfg.GuardSettings())
	state := guard.Assess(ctx, rootScope, planned, tagged)
	if err := ec.reporter.HandleQuota(state); err != nil {
		return err
	}
	if !state.WithinLimits {
		return fmt.Errorf("%w: projected %d, threshold %d",
			domain.ErrQuotaExceeded, state.ProjectedTotal, state.SafetyThreshold)
	}

	days := ec.expiresInDays
	if days <= 0 {
		days = domain.DefaultExpiryDays(category)
	}
	expiresOn := time.Now().UTC().AddDate(0, 0, days)

	result := exemption.NewCreator(store).Run(ctx, tagged, assignments, category, expiresOn, cfg.BatchConfig())
	return ec.reporter.HandleBatch(result)
}

func (ec *ExemptionsCmd) validate() error {
	if (ec.subscription == "") == (ec.group == "") {
		return domain.NewValidationError("exactly one of --subscription or --management-group is required")
	}
	switch domain.ExemptionCategory(ec.category) {
	case domain.CategoryWaiver, domain.CategoryMitigated:
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown category %q", ec.category))
	}
	return nil
}

// resolveScopes produces the subscriptions to inspect, the scopes to search
// for assignments, and the anchor scope used for quota assessment.
func (ec *ExemptionsCmd) resolveScopes(ctx context.Context, session *azure.Session) ([]domain.ScopeNode, []string, string, error) {
	if ec.subscription != "" {
		subScope := domain.SubscriptionScope(ec.subscription)
		subs := []domain.ScopeNode{{
			Kind: domain.ScopeKindSubscription,
			ID:   ec.subscription,
			Name: ec.subscription,
		}}
		return subs, []string{subScope}, subScope, nil
	}

	hierarchy, err := session.Hierarchy()
	if err != nil {
		return nil, nil, "", err
	}
	subs, err := scope.NewResolver(hierarchy).Subscriptions(ctx, ec.group)
	if err != nil {
		return nil, nil, "", err
	}

	rootScope := domain.ManagementGroupScope(ec.group)
	scopes := []string{rootScope}
	if ec.includeChild {
		for _, sub := range subs {
			scopes = append(scopes, domain.SubscriptionScope(sub.ID))
		}
	}
	return subs, scopes, rootScope, nil
}

func subscriptionIDs(subs []domain.ScopeNode) []string {
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.ID)
	}
	return ids
}
