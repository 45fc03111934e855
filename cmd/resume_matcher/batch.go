package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
)

var batchCmd = &cobra.Command{
	Use:   "batch [resume...]",
	Short: "Score many resumes against one job description",
	Long: "Analyze every PDF and DOCX in --dir (and any files given as arguments) against one job description. " +
		"Unreadable resumes are reported per file; a missing language model stops the whole batch.",
	RunE: runBatch,
}

var (
	batchDir     string
	batchJob     jobSource
	batchOut     string
	batchVerbose bool
)

func init() {
	batchCmd.Flags().StringVar(&batchDir, "dir", "", "Directory of resumes to analyze")
	batchCmd.Flags().StringVarP(&batchJob.File, "job", "j", "", "Path to a job description text file")
	batchCmd.Flags().StringVar(&batchJob.Text, "job-text", "", "Job description text")
	batchCmd.Flags().StringVar(&batchJob.URL, "job-url", "", "URL of a job posting to fetch")
	batchCmd.Flags().Int("concurrency", 4, "Maximum resumes analyzed at once")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Path to output JSON file (default stdout)")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print a summary line per resume to stderr")

	bindFlag("batch.concurrency", batchCmd.Flags().Lookup("concurrency"))

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	files, err := resumeFiles(batchDir, args)
	if err != nil {
		return err
	}
	jobDescription, err := batchJob.load(cmd.Context(), appConfig, appLogger)
	if err != nil {
		return err
	}

	items := make([]matching.BatchItem, 0, len(files))
	for _, path := range files {
		doc, err := readResume(path, "")
		if err != nil {
			return err
		}
		items = append(items, matching.BatchItem{Name: filepath.Base(path), Document: doc})
	}

	matcher, _, err := newMatcher(appConfig, appLogger)
	if err != nil {
		return err
	}

	results, err := matcher.AnalyzeBatch(cmd.Context(), items, jobDescription, appConfig.Batch.Concurrency)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Result == nil {
			continue
		}
		if _, err := encodeResult(r.Result, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if batchVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintBatchSummary(results)
	}
	return writeJSON(cmd.OutOrStdout(), batchOut, results)
}
