package terminal

import (
	"io"
	"os"

	"github.com/de-tools/policy-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/policy-atlas/pkg/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	sessions commands.SessionFactory
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Sessions commands.SessionFactory
	Output   io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		sessions: opts.Sessions,
		reporter: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy-atlas",
		Short: "Policy exemption reconciliation tool",
	}

	cmd.AddCommand(commands.NewExemptionsCmd(cli.sessions, cli.reporter))
	cmd.AddCommand(commands.NewCoverageCmd(cli.sessions, cli.reporter))

	return cmd
}
