package main

import (
	"fmt"
	"os"

	"github.com/artpar/actiongate/bootstrap"
	"github.com/artpar/actiongate/config"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the validation server",
	Long: `Start the ActionGate validation server.

The server will:
  - Load configuration from actiongate.yaml (or --config)
  - Or load configuration from ACTIONGATE_* environment variables
  - Load the action schema and watch it for changes
  - Serve validation verdicts over HTTP

Environment variables (for Docker deployments):
  ACTIONGATE_SCHEMA_PATH    - Path to the schema JSON file (required)
  ACTIONGATE_DATABASE_DSN   - Decision journal path (default: actiongate.db)
  ACTIONGATE_SERVER_PORT    - Server port (default: 8080)
  ACTIONGATE_LOG_LEVEL      - Log level: debug, info, warn, error

Examples:
  actiongate serve
  actiongate serve --config /etc/actiongate/config.yaml

  # Docker (env vars only):
  ACTIONGATE_SCHEMA_PATH=schema.json actiongate serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	// No configuration at all
	if !hasConfigFile && !config.HasEnvConfig() {
		fmt.Println("No configuration found.")
		fmt.Println()
		fmt.Printf("Option 1: Run 'actiongate init' to create %s\n", cfgFile)
		fmt.Println("Option 2: Set ACTIONGATE_SCHEMA_PATH environment variable")
		fmt.Println()
		fmt.Println("Example (env vars):")
		fmt.Println("  ACTIONGATE_SCHEMA_PATH=schema.json actiongate serve")
		return nil
	}

	if !hasConfigFile {
		fmt.Println("Running with environment variables (no config file)")
	}

	app, err := bootstrap.New(cfgFile)
	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
