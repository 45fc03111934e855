package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Metadata contains metadata about an extracted resume
type Metadata struct {
	Format     types.Format `json:"format"`
	Timestamp  string       `json:"timestamp"`  // RFC3339 format
	Hash       string       `json:"hash"`       // SHA256 hex digest of the raw bytes
	Sections   int          `json:"sections"`   // PDF pages or DOCX paragraphs
	Characters int          `json:"characters"` // Runes in the cleaned text
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(doc types.RawDocument, text string, sections int) *Metadata {
	return &Metadata{
		Format:     doc.Format,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(doc.Content),
		Sections:   sections,
		Characters: utf8.RuneCountInString(text),
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// DocumentInfo converts the metadata into the form embedded in match results.
func (m *Metadata) DocumentInfo() types.DocumentInfo {
	if m == nil {
		return types.DocumentInfo{}
	}
	return types.DocumentInfo{
		Format:     m.Format,
		Hash:       m.Hash,
		Sections:   m.Sections,
		Characters: m.Characters,
	}
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
