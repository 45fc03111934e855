package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Extract plain text from a PDF or DOCX resume",
	RunE:  runExtractText,
}

var (
	extractTextResume   string
	extractTextFormat   string
	extractTextOut      string
	extractTextMetadata bool
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractTextResume, "resume", "r", "", "Path to the resume (PDF or DOCX)")
	extractTextCmd.Flags().StringVar(&extractTextFormat, "format", "", "Resume format (pdf or docx); defaults to the file extension")
	extractTextCmd.Flags().StringVarP(&extractTextOut, "out", "o", "", "Path to output text file (default stdout)")
	extractTextCmd.Flags().BoolVar(&extractTextMetadata, "metadata", false, "Print extraction metadata JSON to stderr")

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(extractTextResume, extractTextFormat)
	if err != nil {
		return err
	}

	text, meta, err := ingestion.NewExtractor(appLogger).ExtractWithMetadata(doc)
	if err != nil {
		return fmt.Errorf("text extraction failed: %w", err)
	}

	if extractTextMetadata {
		data, err := meta.ToJSON()
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.ErrOrStderr(), "", data); err != nil {
			return err
		}
	}
	return writeOutput(cmd.OutOrStdout(), extractTextOut, []byte(text))
}
