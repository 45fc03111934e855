package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/skills"
)

var vocabularyCmd = &cobra.Command{
	Use:   "vocabulary",
	Short: "Inspect and validate skill vocabularies",
}

var vocabularyValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a skill vocabulary file for schema and alias errors",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabularyValidate,
}

var vocabularyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the skills of the configured vocabulary",
	RunE:  runVocabularyList,
}

var vocabularyListJSON bool

type vocabularyEntry struct {
	Skill   string   `json:"skill"`
	Aliases []string `json:"aliases"`
}

func init() {
	vocabularyListCmd.Flags().BoolVar(&vocabularyListJSON, "json", false, "Print the vocabulary as JSON")

	vocabularyCmd.AddCommand(vocabularyValidateCmd)
	vocabularyCmd.AddCommand(vocabularyListCmd)
	rootCmd.AddCommand(vocabularyCmd)
}

func runVocabularyValidate(cmd *cobra.Command, args []string) error {
	path := args[0]
	vocab, err := skills.LoadVocabulary(path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Validation passed: %d skills in %s\n", vocab.Len(), path)
	return nil
}

func runVocabularyList(cmd *cobra.Command, _ []string) error {
	vocab, err := skills.Resolve(appConfig.VocabularyPath)
	if err != nil {
		return err
	}

	entries := make([]vocabularyEntry, 0, vocab.Len())
	for _, skill := range vocab.Canonical() {
		aliases := vocab.Aliases(skill)
		if aliases == nil {
			aliases = []string{}
		}
		entries = append(entries, vocabularyEntry{Skill: skill, Aliases: aliases})
	}

	if vocabularyListJSON {
		return writeJSON(cmd.OutOrStdout(), "", entries)
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s (%d skills)\n", vocab.Source(), vocab.Len())
	for _, e := range entries {
		if len(e.Aliases) == 0 {
			_, _ = fmt.Fprintf(out, "  %s\n", e.Skill)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s (%s)\n", e.Skill, strings.Join(e.Aliases, ", "))
	}
	return nil
}
