package skills

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

func defaultVocab(t *testing.T) *Vocabulary {
	t.Helper()
	vocab, err := DefaultVocabulary()
	require.NoError(t, err)
	return vocab
}

func TestExtract_ResumeAndJobSentences(t *testing.T) {
	extractor := NewExtractor(defaultVocab(t), nil)

	resume := extractor.Extract("Experienced Python developer with skills in Java, SQL, and Git.")
	job := extractor.Extract("Looking for a developer skilled in Python, Java, and Docker.")

	assert.Equal(t, []string{"git", "java", "python", "sql"}, resume.Sorted())
	assert.Equal(t, []string{"docker", "java", "python"}, job.Sorted())
}

func TestExtractSkills(t *testing.T) {
	vocab := defaultVocab(t)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "aliases map to canonical",
			text:     "Worked with K8s, JS and ReactJS; built NLP pipelines with sklearn",
			expected: []string{"javascript", "kubernetes", "natural language processing", "react", "scikit-learn"},
		},
		{
			name:     "multi-word skills",
			text:     "Background in Machine Learning and deep learning",
			expected: []string{"deep learning", "machine learning"},
		},
		{
			name:     "multi-word skill across a line break",
			text:     "Strong background in machine\nlearning",
			expected: []string{"machine learning"},
		},
		{
			name:     "list separator ends a phrase",
			text:     "machine, learning",
			expected: []string{},
		},
		{
			name:     "longest and shorter alias both map to one skill",
			text:     "Deployed on Google Cloud Platform",
			expected: []string{"gcp"},
		},
		{
			name:     "skill punctuation kept",
			text:     "Languages: C++. Runtimes: Node.js/React (Vue.js)",
			expected: []string{"c++", "node.js", "react", "vue"},
		},
		{
			name:     "token equality only",
			text:     "JavaScript developer with Javanese language skills",
			expected: []string{"javascript"},
		},
		{
			name:     "hyphenated alias",
			text:     "Problem-solving and team work",
			expected: []string{"problem solving", "teamwork"},
		},
		{
			name:     "case-insensitive",
			text:     "PYTHON Docker aWs",
			expected: []string{"aws", "docker", "python"},
		},
		{
			name:     "bullets and quotes",
			text:     "• \"Python\"\n• 'SQL'\n- Git",
			expected: []string{"git", "python", "sql"},
		},
		{
			name:     "possessives",
			text:     "Python's ecosystem, Docker’s tooling and machine learning's reach",
			expected: []string{"docker", "machine learning", "python"},
		},
		{
			name:     "empty text",
			text:     "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSkills(tt.text, vocab).Sorted())
		})
	}
}

func TestExtractSkills_WhitespaceInvariance(t *testing.T) {
	vocab := defaultVocab(t)

	unix := ExtractSkills("Python developer\nJava, SQL\n\nmachine learning", vocab)
	windows := ExtractSkills("Python   developer\r\n\tJava,  SQL\r\n\r\nmachine \t learning  ", vocab)

	assert.Equal(t, unix, windows)
	assert.Equal(t, []string{"java", "machine learning", "python", "sql"}, unix.Sorted())
}

func TestExtractSkills_Deterministic(t *testing.T) {
	vocab := defaultVocab(t)
	text := "Python, Docker, Kubernetes, AWS and machine learning with TensorFlow"

	first := ExtractSkills(text, vocab)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractSkills(text, vocab))
	}

	// Other texts in between must not leak into later results.
	ExtractSkills("java sql git", vocab)
	assert.Equal(t, first, ExtractSkills(text, vocab))
}

func TestExtractSkills_NilVocabulary(t *testing.T) {
	found := ExtractSkills("python", nil)
	assert.NotNil(t, found)
	assert.Equal(t, 0, found.Len())
}

func TestExtractor_NilVocabulary(t *testing.T) {
	extractor := NewExtractor(nil, nil)
	assert.NotPanics(t, func() {
		assert.Equal(t, 0, extractor.Extract("python").Len())
	})
}

func TestExtractor_SubstitutedVocabulary(t *testing.T) {
	vocab, err := NewVocabulary(map[string][]string{
		"Golang":         {"go"},
		"Event Sourcing": {"ES/CQRS"},
	})
	require.NoError(t, err)

	found := NewExtractor(vocab, nil).Extract("I write Go and know es/cqrs patterns.")
	assert.Equal(t, []string{"event sourcing", "golang"}, found.Sorted())
	assert.Same(t, vocab, NewExtractor(vocab, nil).Vocabulary())
}

func TestExtractor_LogsCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	extractor := NewExtractor(defaultVocab(t), zap.New(core))

	extractor.Extract("python and java")

	entries := logs.FilterMessage("skills extracted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), entries[0].ContextMap()["skills"])
	assert.Equal(t, DefaultSource, entries[0].ContextMap()["vocabulary"])
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected [][]string
	}{
		{"separators", "Python, Java/Go (SQL).", [][]string{{"python"}, {"java", "go"}, {"sql"}}},
		{"kept characters", "C++ C# .NET node.js scikit-learn", [][]string{{"c++", "c#", ".net", "node.js", "scikit-learn"}}},
		{"semicolon and pipe", "a; b | c", [][]string{{"a"}, {"b"}, {"c"}}},
		{"sentence end", "knows git. docker too!", [][]string{{"knows", "git"}, {"docker", "too"}}},
		{"possessive", "Python's tools, 'Go's'", [][]string{{"python"}, {"tools"}, {"go"}}},
		{"lone apostrophe s", "'s", [][]string{{"s"}}},
		{"punctuation only", "-- ... !!", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tokenize(tt.text))
		})
	}
}

func TestNormalizeTerm(t *testing.T) {
	assert.Equal(t, "machine learning", normalizeTerm("  Machine   LEARNING "))
	assert.Equal(t, "ci cd", normalizeTerm("CI/CD"))
	assert.Equal(t, "c++", normalizeTerm("C++"))
	assert.Equal(t, "", normalizeTerm("!!!"))
}

func TestDefaultVocabulary(t *testing.T) {
	vocab := defaultVocab(t)

	assert.Equal(t, 40, vocab.Len())
	assert.Equal(t, 3, vocab.MaxWords())
	assert.Equal(t, DefaultSource, vocab.Source())

	canonical := vocab.Canonical()
	assert.IsIncreasing(t, canonical)
	assert.Contains(t, canonical, "natural language processing")
	assert.NotContains(t, canonical, "nlp")

	name, ok := vocab.Lookup("NLP")
	assert.True(t, ok)
	assert.Equal(t, "natural language processing", name)

	name, ok = vocab.Lookup("Postgres")
	assert.True(t, ok)
	assert.Equal(t, "postgresql", name)

	_, ok = vocab.Lookup("golang")
	assert.False(t, ok)

	assert.Equal(t, []string{"google cloud", "google cloud platform"}, vocab.Aliases("GCP"))
	assert.Empty(t, vocab.Aliases("unknown"))
}

func TestDefaultVocabulary_LoadedOnce(t *testing.T) {
	const callers = 32
	results := make([]*Vocabulary, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			vocab, err := DefaultVocabulary()
			assert.NoError(t, err)
			results[i] = vocab
		}(i)
	}
	wg.Wait()

	for _, vocab := range results {
		assert.Same(t, results[0], vocab)
	}

	resolved, err := Resolve("  ")
	require.NoError(t, err)
	assert.Same(t, results[0], resolved)
}

func TestVocabulary_EntriesIsCopy(t *testing.T) {
	vocab, err := NewVocabulary(map[string][]string{"Python": {"py"}})
	require.NoError(t, err)

	entries := vocab.Entries()
	assert.Equal(t, map[string][]string{"python": {"py"}}, entries)

	entries["python"][0] = "changed"
	entries["java"] = nil
	assert.Equal(t, []string{"py"}, vocab.Aliases("python"))
	assert.Equal(t, 1, vocab.Len())
}

func TestNewVocabulary_Errors(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string][]string
		message string
	}{
		{"empty", map[string][]string{}, "no skills defined"},
		{"duplicate canonical", map[string][]string{"Python": nil, "python": nil}, "duplicates"},
		{"alias names another skill", map[string][]string{"javascript": {"java"}, "java": nil}, "already names"},
		{"shared alias", map[string][]string{"a": {"x"}, "b": {"x"}}, "already names"},
		{"blank name", map[string][]string{"  ": nil}, "is blank"},
		{"punctuation name", map[string][]string{"!!!": nil}, "is blank"},
		{"blank alias", map[string][]string{"python": {""}}, "is blank"},
		{"separator in name", map[string][]string{"python, java": nil}, "list separator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewVocabulary(tt.entries)
			require.Error(t, err)

			var vocabErr *VocabularyError
			require.True(t, errors.As(err, &vocabErr))
			assert.Contains(t, vocabErr.Message, tt.message)
		})
	}
}

func TestNewVocabulary_RedundantAliasesIgnored(t *testing.T) {
	vocab, err := NewVocabulary(map[string][]string{"Python": {"python", "PY", "py"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"py"}, vocab.Aliases("python"))
}

func TestParseVocabulary(t *testing.T) {
	vocab, err := ParseVocabulary("inline.json", []byte(`{"Rust": ["rust-lang"], "WebAssembly": ["wasm"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"rust", "webassembly"}, vocab.Canonical())
	assert.Equal(t, "inline.json", vocab.Source())

	_, err = ParseVocabulary("bad.json", []byte(`{"Rust": "rust-lang"}`))
	require.Error(t, err)
	var vocabErr *VocabularyError
	require.True(t, errors.As(err, &vocabErr))
	assert.Equal(t, "bad.json", vocabErr.Path)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoadVocabulary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "skills.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"terraform": ["tf"], "ansible": []}`), 0o644))

	vocab, err := LoadVocabulary(path)
	require.NoError(t, err)
	assert.Equal(t, path, vocab.Source())

	found := NewExtractor(vocab, nil).Extract("Provisioned with TF and Ansible")
	assert.Equal(t, types.NewSkillSet("ansible", "terraform"), found)

	resolved, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, vocab.Canonical(), resolved.Canonical())
}

func TestLoadVocabulary_MissingFile(t *testing.T) {
	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var vocabErr *VocabularyError
	require.True(t, errors.As(err, &vocabErr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read file")
}
