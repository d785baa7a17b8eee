package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/artpar/actiongate/config"
	"github.com/artpar/actiongate/core/schema"
	"github.com/artpar/actiongate/core/validation"
	"github.com/artpar/actiongate/domain/envelope"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <request-file>",
	Short: "Validate a request file against the schema",
	Long: `Validate a single request file against the action schema and print
the verdict.

By default the file is treated as a plain request document and checked
in document mode, where parameter values are inspected. With --envelope
the file is parsed as a typed request envelope and checked in envelope
mode, where the declared parameter kinds are trusted.

The schema comes from the configuration file, or directly from --schema.
Exit status is 0 for a valid request and 1 for an invalid one.

Examples:
  actiongate check request.json
  actiongate check --envelope request.json
  actiongate check --schema schema.json request.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkEnvelope   bool
	checkSchemaPath string
)

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkEnvelope, "envelope", false, "treat the file as a typed request envelope")
	checkCmd.Flags().StringVar(&checkSchemaPath, "schema", "", "schema file path (bypasses the config file)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	svc, err := loadCheckSchema()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	var res validation.Result
	if checkEnvelope {
		req, err := envelope.ParseRequest(data)
		if err != nil {
			return fmt.Errorf("parse envelope: %w", err)
		}
		res = validation.Envelope(svc, req)
	} else {
		var tree any
		if err := json.Unmarshal(data, &tree); err != nil {
			return fmt.Errorf("parse document: %w", err)
		}
		// Non-object documents carry no action name and fail as unknown.
		doc, _ := tree.(map[string]any)
		res = validation.Document(svc, doc)
	}

	if res.Valid {
		fmt.Printf("%s Request is valid\n", checkMark)
		return nil
	}

	fmt.Printf("%s Request is invalid\n", crossMark)
	fmt.Printf("  Reason:    %s\n", res.Err.Reason)
	if res.Err.Action != "" {
		fmt.Printf("  Action:    %s\n", res.Err.Action)
	}
	if res.Err.Parameter != "" {
		fmt.Printf("  Parameter: %s\n", res.Err.Parameter)
	}
	fmt.Printf("  Message:   %s\n", res.Err.Message)
	os.Exit(1)
	return nil
}

func loadCheckSchema() (schema.Service, error) {
	if checkSchemaPath != "" {
		return schema.ParseFile(checkSchemaPath)
	}

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return schema.Service{}, err
	}
	return schema.ParseFile(cfg.Schema.Path)
}
