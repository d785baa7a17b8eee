package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "actiongate",
	Short: "Schema-driven validator for typed action requests",
	Long: `ActionGate validates action requests against a service schema.

It loads a schema describing the callable actions of a service and
answers, for each request, whether the named action exists and every
required parameter carries a usable value.

Quick start:
  actiongate init      # Interactive setup wizard
  actiongate serve     # Start the validation server

Tooling:
  actiongate validate  # Validate configuration and schema
  actiongate check     # Validate a request file against the schema`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "actiongate.yaml", "config file path")
}
