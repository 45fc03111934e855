package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/similarity"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute the TF-IDF cosine similarity of two text files",
	RunE:  runScore,
}

var (
	scoreResumeText string
	scoreJob        string
)

type scoreOutput struct {
	Score        float64 `json:"score"`
	ScorePercent float64 `json:"score_percent"`
}

func init() {
	scoreCmd.Flags().StringVar(&scoreResumeText, "resume-text", "", "Path to extracted resume text")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to a job description text file")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	if scoreResumeText == "" || scoreJob == "" {
		return fmt.Errorf("--resume-text and --job are required")
	}
	resumeText, err := ingestion.ReadTextFile(scoreResumeText)
	if err != nil {
		return err
	}
	jobText, err := ingestion.ReadJobDescription(scoreJob)
	if err != nil {
		return err
	}

	score := similarity.Score(resumeText, ingestion.CleanText(jobText))
	return writeJSON(cmd.OutOrStdout(), "", scoreOutput{Score: score, ScorePercent: similarity.Percent(score)})
}
