package main

import (
	"fmt"
	"os"

	"github.com/artpar/actiongate/adapters/sqlite"
	"github.com/artpar/actiongate/config"
	"github.com/artpar/actiongate/core/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and schema before deployment",
	Long: `Validate the ActionGate configuration file and the schema it points to.

Checks:
  - YAML syntax is valid
  - Required fields are present
  - Schema file parses
  - Database is writable (optional)

Examples:
  actiongate validate
  actiongate validate --config /etc/actiongate/config.yaml`,
	RunE: runValidate,
}

var validateCheckDatabase bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckDatabase, "check-database", false, "check if the decision journal database is writable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	// Check file exists
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Printf("  %s Config file exists\n", checkMark)

	// Load and validate config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config syntax valid\n", checkMark)

	// Parse the schema the config points to
	svc, err := schema.ParseFile(cfg.Schema.Path)
	if err != nil {
		fmt.Printf("  %s Schema parses\n", crossMark)
		return fmt.Errorf("schema error: %w", err)
	}
	fmt.Printf("  %s Schema parses\n", checkMark)

	// Show schema summary
	fmt.Printf("  %s Service: %s\n", checkMark, svc.Name)
	fmt.Printf("  %s Actions: %d\n", checkMark, len(svc.Actions))
	for _, action := range svc.Actions {
		required := len(action.RequiredParameters())
		optional := len(action.Parameters) - required
		fmt.Printf("      %s (%d required, %d optional)\n", action.Name, required, optional)
	}
	fmt.Printf("  %s Database: %s (%s)\n", checkMark, cfg.Database.DSN, cfg.Database.Driver)

	// Optional: check database
	if validateCheckDatabase && cfg.Database.Driver == "sqlite" {
		if err := checkDatabaseWritable(cfg.Database.DSN); err != nil {
			fmt.Printf("  %s Database writable\n", crossMark)
			fmt.Printf("      Error: %v\n", err)
		} else {
			fmt.Printf("  %s Database writable\n", checkMark)
		}
	}

	if len(svc.Actions) == 0 {
		fmt.Println()
		fmt.Println("Warning: schema declares no actions; every request will be rejected.")
	}

	fmt.Println()
	fmt.Println("Configuration is valid.")
	return nil
}

func checkDatabaseWritable(dsn string) error {
	db, err := sqlite.Open(dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return nil
}

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)
