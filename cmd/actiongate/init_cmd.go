package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/artpar/actiongate/adapters/sqlite"
	"github.com/artpar/actiongate/core/schema"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup wizard",
	Long: `Initialize ActionGate with an interactive setup wizard.

This will:
  1. Ask for the schema file location
  2. Configure the decision journal database
  3. Create the initial configuration file
  4. Write a starter schema if none exists

Examples:
  actiongate init
  actiongate init --config /etc/actiongate/config.yaml`,
	RunE: runInit,
}

var (
	initSchema         string
	initDatabase       string
	initNonInteractive bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initSchema, "schema", "schema.json", "schema file path")
	initCmd.Flags().StringVar(&initDatabase, "database", "actiongate.db", "decision journal path")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "run without prompts")
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println("Welcome to ActionGate!")
	fmt.Println()

	// Check if config already exists
	if _, err := os.Stat(cfgFile); err == nil {
		fmt.Printf("Configuration file already exists: %s\n", cfgFile)
		if !confirm("Overwrite?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	reader := bufio.NewReader(os.Stdin)

	// Get schema location
	schemaPath := initSchema
	if !initNonInteractive && initSchema == "schema.json" {
		schemaPath = prompt(reader, "Schema file location", "schema.json")
	}

	// Get database location
	database := initDatabase
	if !initNonInteractive && initDatabase == "actiongate.db" {
		database = prompt(reader, "Decision journal location", "actiongate.db")
	}

	// Generate config
	configContent := generateConfig(schemaPath, database)

	// Write config file
	if err := os.WriteFile(cfgFile, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("\n%s Generated %s\n", checkMark, cfgFile)

	// Write a starter schema unless one is already there
	if _, err := os.Stat(schemaPath); os.IsNotExist(err) {
		data, err := schema.Encode(starterSchema())
		if err != nil {
			return fmt.Errorf("encode starter schema: %w", err)
		}
		if err := os.WriteFile(schemaPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write schema: %w", err)
		}
		fmt.Printf("%s Generated starter schema %s\n", checkMark, schemaPath)
	} else {
		fmt.Printf("%s Using existing schema %s\n", checkMark, schemaPath)
	}

	// Create database and run migrations
	db, err := sqlite.Open(database)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Printf("%s Created database %s\n", checkMark, database)

	fmt.Println()
	fmt.Println("Run 'actiongate serve' to start the validation server.")
	fmt.Println()
	fmt.Println("Access points:")
	fmt.Println("  Validation API:  http://localhost:8080/v1/validate/document")
	fmt.Println("  Schema:          http://localhost:8080/v1/schema")
	fmt.Println("  Health:          http://localhost:8080/health")

	return nil
}

func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("? %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("? %s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "" {
		return defaultVal
	}
	return input
}

func confirm(message string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("? %s [y/N]: ", message)
	input, _ := reader.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

func generateConfig(schemaPath, database string) string {
	return fmt.Sprintf(`# ActionGate Configuration
# Generated by 'actiongate init'

server:
  host: "0.0.0.0"
  port: 8080

schema:
  path: "%s"
  watch: true

decisions:
  enabled: true
  batch_size: 100
  flush_interval: 10s

database:
  driver: sqlite
  dsn: "%s"

logging:
  level: info
  format: console

metrics:
  enabled: true

openapi:
  enabled: true
`, schemaPath, database)
}

func starterSchema() schema.Service {
	return schema.Service{
		Name:        "SERVICE_1",
		Description: "Example service. Replace with your own actions.",
		Actions: []schema.Action{
			{
				Name:        "action_1",
				Description: "Example action with one required parameter.",
				Parameters: []schema.Parameter{
					{Name: "a_number_1", Description: "An unsigned 32-bit number.", Kind: schema.Uint32, Required: true},
					{Name: "a_string_1", Description: "An optional label.", Kind: schema.String},
				},
				Outputs: []schema.Output{
					{Name: "an_output_1", Description: "The result.", Kind: schema.String},
				},
			},
		},
	}
}
