package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/nlp"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

// newSkillExtractor loads the configured vocabulary.
func newSkillExtractor(cfg *config.Config, log *zap.Logger) (*skills.Extractor, error) {
	vocab, err := skills.Resolve(cfg.VocabularyPath)
	if err != nil {
		return nil, err
	}
	log.Debug("skill vocabulary loaded", zap.String("source", vocab.Source()), zap.Int("skills", vocab.Len()))
	return skills.NewExtractor(vocab, log), nil
}

// newMatcher wires the extractor, vocabulary and language model into a Matcher.
func newMatcher(cfg *config.Config, log *zap.Logger) (*matching.Matcher, *skills.Extractor, error) {
	extractor, err := newSkillExtractor(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	models := matching.FromLoader(nlp.NewLoader(cfg.ModelDir, log))
	return matching.New(extractor, models, matching.WithLogger(log)), extractor, nil
}

// readResume reads a resume file; the format flag wins over the file extension.
func readResume(path, format string) (types.RawDocument, error) {
	if path == "" {
		return types.RawDocument{}, fmt.Errorf("--resume is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return types.RawDocument{}, fmt.Errorf("failed to read resume: %w", err)
	}
	f := types.FormatFromFilename(path)
	if format != "" {
		f = types.ParseFormat(format)
	}
	return types.RawDocument{Content: content, Format: f}, nil
}

// jobSource names exactly one place to read a job description from.
type jobSource struct {
	File    string
	Text    string
	URL     string
	Browser bool
}

func (s jobSource) load(ctx context.Context, cfg *config.Config, log *zap.Logger) (string, error) {
	set := 0
	for _, value := range []string{s.File, s.Text, s.URL} {
		if value != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return "", fmt.Errorf("one of --job, --job-text or --job-url is required")
	case set > 1:
		return "", fmt.Errorf("--job, --job-text and --job-url are mutually exclusive")
	}

	switch {
	case s.File != "":
		return ingestion.ReadJobDescription(s.File)
	case s.Text != "":
		return s.Text, nil
	default:
		return ingestion.JobDescriptionFromURL(ctx, s.URL, ingestion.JobFetchOptions{
			Timeout:    cfg.Fetch.Timeout,
			UseBrowser: s.Browser || cfg.Fetch.UseBrowser,
			Logger:     log,
		})
	}
}

// resumeFiles lists the PDF and DOCX files in dir, sorted, followed by extra.
func resumeFiles(dir string, extra []string) ([]string, error) {
	var files []string
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if types.FormatFromFilename(e.Name()).IsSupported() {
				files = append(files, filepath.Join(dir, e.Name()))
			}
		}
		sort.Strings(files)
	}
	files = append(files, extra...)
	if len(files) == 0 {
		return nil, fmt.Errorf("no resumes given (use --dir or pass files)")
	}
	return files, nil
}

// encodeResult marshals a result and checks it against the match result schema.
// A schema that cannot be loaded only produces a warning.
func encodeResult(result any, warn io.Writer) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := checkSchema(schemafiles.MatchResult, data, warn); err != nil {
		return nil, err
	}
	return data, nil
}

func checkSchema(name string, data []byte, warn io.Writer) error {
	err := schemas.ValidateBytes(name, data)
	if err == nil {
		return nil
	}
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}
	_, _ = fmt.Fprintf(warn, "Warning: Could not validate output against schema: %v\n", err)
	return nil
}

// writeOutput writes data to path, or to out when path is empty or "-".
func writeOutput(out io.Writer, path string, data []byte) error {
	if !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	if path == "" || path == "-" {
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// writeJSON marshals v with indentation and writes it like writeOutput.
func writeJSON(out io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(out, path, data)
}
