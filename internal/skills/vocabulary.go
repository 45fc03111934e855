package skills

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-matcher/internal/schemas"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

//go:embed default_vocabulary.json
var defaultVocabularyJSON []byte

// DefaultSource names the built-in vocabulary in errors and logs.
const DefaultSource = "(built-in)"

// VocabularyError is returned when a vocabulary file cannot be read, fails
// schema validation, or is internally inconsistent.
type VocabularyError struct {
	Path    string
	Message string
	Cause   error
}

func (e *VocabularyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid skill vocabulary %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid skill vocabulary %s: %s", e.Path, e.Message)
}

func (e *VocabularyError) Unwrap() error {
	return e.Cause
}

// Vocabulary maps canonical skill names to their aliases. It is immutable
// once built and safe for concurrent use.
type Vocabulary struct {
	source   string
	aliases  map[string][]string // canonical -> sorted aliases
	index    map[string]string   // normalized term -> canonical
	maxWords int
}

// NewVocabulary builds a Vocabulary from canonical names and their aliases.
// Names are matched case-insensitively; canonical names are reported in their
// normalized (lower-case, single-spaced) form. An alias that also names another
// skill, or a name that would span a list separator, is rejected.
func NewVocabulary(entries map[string][]string) (*Vocabulary, error) {
	return buildVocabulary("(inline)", entries)
}

func buildVocabulary(source string, entries map[string][]string) (*Vocabulary, error) {
	if len(entries) == 0 {
		return nil, &VocabularyError{Path: source, Message: "no skills defined"}
	}

	v := &Vocabulary{
		source:  source,
		aliases: make(map[string][]string, len(entries)),
		index:   make(map[string]string),
	}

	// Sorted iteration keeps error messages stable.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		canonical, err := v.term(name)
		if err != nil {
			return nil, err
		}
		if owner, exists := v.index[canonical]; exists {
			return nil, &VocabularyError{Path: source, Message: fmt.Sprintf("skill %q duplicates %q", name, owner)}
		}
		v.index[canonical] = canonical
		v.aliases[canonical] = []string{}
	}

	for _, name := range names {
		canonical := normalizeTerm(name)
		for _, alias := range entries[name] {
			key, err := v.term(alias)
			if err != nil {
				return nil, err
			}
			if owner, exists := v.index[key]; exists {
				if owner == canonical {
					continue
				}
				return nil, &VocabularyError{
					Path:    source,
					Message: fmt.Sprintf("alias %q of %q already names %q", alias, canonical, owner),
				}
			}
			v.index[key] = canonical
			v.aliases[canonical] = append(v.aliases[canonical], key)
		}
		sort.Strings(v.aliases[canonical])
	}

	return v, nil
}

// term normalizes one vocabulary entry and tracks the longest word count.
func (v *Vocabulary) term(raw string) (string, error) {
	runs := tokenize(raw)
	switch {
	case len(runs) == 0:
		return "", &VocabularyError{Path: v.source, Message: fmt.Sprintf("skill name %q is blank", raw)}
	case len(runs) > 1:
		return "", &VocabularyError{Path: v.source, Message: fmt.Sprintf("skill name %q contains a list separator", raw)}
	}
	v.maxWords = max(v.maxWords, len(runs[0]))
	return strings.Join(runs[0], " "), nil
}

// ParseVocabulary parses and validates a JSON vocabulary: an object mapping
// each canonical skill to an array of aliases.
func ParseVocabulary(source string, data []byte) (*Vocabulary, error) {
	if err := schemas.ValidateBytes(schemafiles.SkillVocabulary, data); err != nil {
		return nil, &VocabularyError{Path: source, Message: "schema validation failed", Cause: err}
	}

	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &VocabularyError{Path: source, Message: "failed to decode", Cause: err}
	}

	return buildVocabulary(source, entries)
}

// LoadVocabulary reads a vocabulary file from disk.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &VocabularyError{Path: path, Message: "failed to read file", Cause: err}
	}
	return ParseVocabulary(path, data)
}

var defaultVocabulary = sync.OnceValues(func() (*Vocabulary, error) {
	return ParseVocabulary(DefaultSource, defaultVocabularyJSON)
})

// DefaultVocabulary returns the built-in vocabulary. It is parsed once per process.
func DefaultVocabulary() (*Vocabulary, error) {
	return defaultVocabulary()
}

// Resolve returns the vocabulary at path, or the built-in one when path is empty.
func Resolve(path string) (*Vocabulary, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultVocabulary()
	}
	return LoadVocabulary(path)
}

// Lookup maps a term (canonical name or alias, any case) to its canonical skill.
func (v *Vocabulary) Lookup(term string) (string, bool) {
	canonical, ok := v.index[normalizeTerm(term)]
	return canonical, ok
}

// Canonical returns every canonical skill in lexicographic order.
func (v *Vocabulary) Canonical() []string {
	out := make([]string, 0, len(v.aliases))
	for name := range v.aliases {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Aliases returns the normalized aliases of a canonical skill.
func (v *Vocabulary) Aliases(canonical string) []string {
	return append([]string(nil), v.aliases[normalizeTerm(canonical)]...)
}

// Entries returns a copy of the canonical-to-aliases mapping.
func (v *Vocabulary) Entries() map[string][]string {
	out := make(map[string][]string, len(v.aliases))
	for name, aliases := range v.aliases {
		out[name] = append([]string{}, aliases...)
	}
	return out
}

// Len returns the number of canonical skills.
func (v *Vocabulary) Len() int {
	return len(v.aliases)
}

// MaxWords returns the word count of the longest name or alias.
func (v *Vocabulary) MaxWords() int {
	return v.maxWords
}

// Source returns the file the vocabulary was loaded from.
func (v *Vocabulary) Source() string {
	if v == nil {
		return ""
	}
	return v.source
}
