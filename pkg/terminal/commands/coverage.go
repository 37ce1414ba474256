package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/policy-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/policy-atlas/pkg/services/assignment"
	"github.com/de-tools/policy-atlas/pkg/services/coverage"
	"github.com/de-tools/policy-atlas/pkg/services/scope"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type CoverageCmd struct {
	profile string
	group   string

	sessions SessionFactory
	reporter *export.Reporter
}

func NewCoverageCmd(sessions SessionFactory, reporter *export.Reporter) *cobra.Command {
	cc := &CoverageCmd{sessions: sessions, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Audit baseline initiative coverage across a subscription tree",
		RunE:  cc.run,
	}

	cmd.Flags().StringVar(&cc.profile, "profile", "", "Azure config profile to use")
	cmd.Flags().StringVar(&cc.group, "management-group", "", "Management group to audit")
	_ = cmd.MarkFlagRequired("management-group")

	return cmd
}

func (cc *CoverageCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	session, err := cc.sessions(cc.profile)
	if err != nil {
		return fmt.Errorf("failed to open Azure session: %w", err)
	}

	hierarchy, err := session.Hierarchy()
	if err != nil {
		return err
	}
	subs, err := scope.NewResolver(hierarchy).Subscriptions(ctx, cc.group)
	if err != nil {
		return err
	}

	locator := assignment.NewLocator(session.PolicyStore())
	report := coverage.NewAuditor(locator).Audit(ctx, subs)
	return cc.reporter.HandleCoverage(report)
}
