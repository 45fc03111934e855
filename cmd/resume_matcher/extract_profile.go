package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/nlp"
	"github.com/jonathan/resume-matcher/internal/profile"
)

var extractProfileCmd = &cobra.Command{
	Use:   "extract-profile",
	Short: "Extract name, email, phone and education from a resume",
	RunE:  runExtractProfile,
}

var (
	extractProfileResume string
	extractProfileFormat string
	extractProfileOut    string
)

func init() {
	extractProfileCmd.Flags().StringVarP(&extractProfileResume, "resume", "r", "", "Path to the resume (PDF or DOCX)")
	extractProfileCmd.Flags().StringVar(&extractProfileFormat, "format", "", "Resume format (pdf or docx); defaults to the file extension")
	extractProfileCmd.Flags().StringVarP(&extractProfileOut, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(extractProfileCmd)
}

func runExtractProfile(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(extractProfileResume, extractProfileFormat)
	if err != nil {
		return err
	}

	text, err := ingestion.NewExtractor(appLogger).Extract(doc)
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}

	pipeline, err := nlp.NewLoader(appConfig.ModelDir, appLogger).Pipeline()
	if err != nil {
		return err
	}

	extracted := profile.NewExtractor(pipeline, appLogger).Extract(text)
	return writeJSON(cmd.OutOrStdout(), extractProfileOut, extracted)
}
