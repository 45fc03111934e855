package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when a job posting cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when no text can be pulled out of a job posting page
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// JobFetchOptions configures how a job posting URL is retrieved.
type JobFetchOptions struct {
	Timeout    time.Duration
	UseBrowser bool // Render with headless Chrome when plain HTTP yields too little text
	Logger     *zap.Logger
}

// JobDescriptionFromHTML reduces a job posting page to cleaned text.
func JobDescriptionFromHTML(html string) (string, error) {
	text, err := fetch.ExtractMainText(html, fetch.JobPostingSelectors())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}
	return CleanText(text), nil
}

// JobDescriptionFromURL downloads a job posting and returns its cleaned text.
func JobDescriptionFromURL(ctx context.Context, urlStr string, opts JobFetchOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.Logger = logger
	if opts.Timeout > 0 {
		fetchOpts.Timeout = opts.Timeout
	}

	result, err := fetch.URL(ctx, urlStr, fetchOpts)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	text, err := JobDescriptionFromHTML(result.HTML)
	if err != nil {
		return "", err
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("job posting text too short, rendering with browser",
			zap.String("url", urlStr),
			zap.Int("characters", len(text)),
		)
		html, err := fetch.WithBrowser(ctx, urlStr, fetchOpts.Timeout, logger)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
		}
		if text, err = JobDescriptionFromHTML(html); err != nil {
			return "", err
		}
	}

	if text == "" {
		return "", fmt.Errorf("%w: no text found at %s", ErrContentExtractionFailed, urlStr)
	}
	return text, nil
}

// ReadJobDescription reads a job description file. HTML files are reduced to
// their main text; anything else is treated as plain text.
func ReadJobDescription(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return JobDescriptionFromHTML(string(content))
	default:
		return ReadTextFile(path)
	}
}
