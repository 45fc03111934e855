// Package ingestion converts uploaded resumes and job descriptions into normalized plain text.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var excessiveBlankLines = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes extracted text so downstream matching is format-agnostic.
// Line endings become LF, runs of whitespace inside a line collapse to one space,
// consecutive blank lines collapse to one, and the result is trimmed.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF), PDF form feeds become line breaks
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\f", "\n")
	content = strings.ReplaceAll(content, "\x00", "")

	// 2. Collapse whitespace line by line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// 3. Remove excessive blank lines (max 1 blank line between blocks)
	result := excessiveBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")

	return strings.TrimSpace(result)
}

// cleanLine collapses all whitespace in a line, including non-breaking spaces and tabs
func cleanLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}

// NonEmptyLines returns the non-blank lines of cleaned text in order.
func NonEmptyLines(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ReadTextFile reads a plain text file (a job description) and returns cleaned text.
func ReadTextFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %w", err)
		}
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return CleanText(string(content)), nil
}
