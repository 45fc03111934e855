package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long: "Validate a JSON file against a JSON Schema. --schema is either the name of an embedded schema " +
		"(match_result.schema.json, skill_vocabulary.schema.json) or a path to a schema file.",
	RunE: runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Embedded schema name or path to a schema file")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := schemas.ValidateFile(validateSchema, validateJSON); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
	return nil
}
