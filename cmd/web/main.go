package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/de-tools/policy-atlas/pkg/server"
	"github.com/de-tools/policy-atlas/pkg/services/assignment"
	"github.com/de-tools/policy-atlas/pkg/services/azure"
	"github.com/de-tools/policy-atlas/pkg/services/coverage"
	"github.com/de-tools/policy-atlas/pkg/services/exemption"
	"github.com/de-tools/policy-atlas/pkg/services/scope"
	"github.com/de-tools/policy-atlas/pkg/services/settings"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profile      string
	settingsPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the read-only web API for policy-atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&profile, "profile", "p", azure.DefaultProfile,
		"Azure config profile to use")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "",
		"Path to an optional settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := azure.LoadConfig(profile)
	if err != nil {
		return fmt.Errorf("failed to load Azure config: %w", err)
	}
	session := azure.NewSession(cfg)

	hierarchy, err := session.Hierarchy()
	if err != nil {
		return err
	}

	toolSettings, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	store := session.PolicyStore()
	locator := assignment.NewLocator(store)
	auditor := coverage.NewGroupAuditor(scope.NewResolver(hierarchy), locator)
	guard := exemption.NewGuard(store, toolSettings.GuardSettings())

	router := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			Auditor: auditor,
			Quota:   guard,
			Logger:  logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, router)
}
