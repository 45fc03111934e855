package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "List the vocabulary skills mentioned in a text",
	Long:  "Read plain text (a job description or extracted resume text) and print the canonical skills it mentions as a sorted JSON array.",
	RunE:  runExtractSkills,
}

var (
	extractSkillsIn   string
	extractSkillsText string
	extractSkillsOut  string
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractSkillsIn, "in", "i", "", "Path to a text file")
	extractSkillsCmd.Flags().StringVar(&extractSkillsText, "text", "", "Text to scan")
	extractSkillsCmd.Flags().StringVarP(&extractSkillsOut, "out", "o", "", "Path to output JSON file (default stdout)")

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(cmd *cobra.Command, _ []string) error {
	if (extractSkillsIn == "") == (extractSkillsText == "") {
		return fmt.Errorf("exactly one of --in or --text is required")
	}

	text := extractSkillsText
	if extractSkillsIn != "" {
		content, err := ingestion.ReadTextFile(extractSkillsIn)
		if err != nil {
			return err
		}
		text = content
	}

	extractor, err := newSkillExtractor(appConfig, appLogger)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), extractSkillsOut, extractor.Extract(text).Sorted())
}
