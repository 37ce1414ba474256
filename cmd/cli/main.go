package main

import (
	"fmt"
	"os"

	"github.com/de-tools/policy-atlas/pkg/runtime/terminal"
	"github.com/de-tools/policy-atlas/pkg/services/azure"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Sessions: func(profile string) (*azure.Session, error) {
			cfg, err := azure.LoadConfig(profile)
			if err != nil {
				return nil, err
			}
			return azure.NewSession(cfg), nil
		},
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
