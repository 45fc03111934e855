package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Long: "Extract the candidate profile and skills from a PDF or DOCX resume, score it against a job description " +
		"and report matched and missing skills as MatchResult JSON.",
	RunE: runAnalyze,
}

var (
	analyzeResume  string
	analyzeFormat  string
	analyzeJob     jobSource
	analyzeOut     string
	analyzeVerbose bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to the resume (PDF or DOCX)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "", "Resume format (pdf or docx); defaults to the file extension")
	analyzeCmd.Flags().StringVarP(&analyzeJob.File, "job", "j", "", "Path to a job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJob.Text, "job-text", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJob.URL, "job-url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().BoolVar(&analyzeJob.Browser, "browser", false, "Render the job posting in headless Chrome before extracting text")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(analyzeResume, analyzeFormat)
	if err != nil {
		return err
	}
	jobDescription, err := analyzeJob.load(cmd.Context(), appConfig, appLogger)
	if err != nil {
		return err
	}

	matcher, _, err := newMatcher(appConfig, appLogger)
	if err != nil {
		return err
	}

	result, err := matcher.AnalyzeMatch(cmd.Context(), doc, jobDescription)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	data, err := encodeResult(result, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if analyzeVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatchResult(result)
	}
	return writeOutput(cmd.OutOrStdout(), analyzeOut, data)
}
