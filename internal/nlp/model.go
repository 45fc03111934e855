// Package nlp owns the process-wide language model used for named-entity
// recognition and sentence segmentation.
//
// The model is expensive to build, so it is loaded at most once per Loader,
// on first use, and shared read-only by every caller afterwards.
package nlp

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"
)

// labelPerson is the entity label the model assigns to people.
const labelPerson = "PERSON"

// ModelUnavailableError is returned when the language model cannot be initialized.
// It is a process-level failure, distinct from per-document errors.
type ModelUnavailableError struct {
	Source string
	Cause  error
}

func (e *ModelUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("language model unavailable (%s): %v", e.Source, e.Cause)
	}
	return fmt.Sprintf("language model unavailable (%s)", e.Source)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Cause
}

// Pipeline runs the shared model over text. It is immutable and safe for concurrent use.
type Pipeline struct {
	model *prose.Model
}

// PersonNames returns the text of every PERSON entity in document order.
func (p *Pipeline) PersonNames(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil
	}

	var names []string
	for _, ent := range doc.Entities() {
		if ent.Label == labelPerson {
			names = append(names, strings.TrimSpace(ent.Text))
		}
	}
	return names
}

// Sentences splits text into sentences.
func (p *Pipeline) Sentences(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithTokenization(false),
	)
	if err != nil {
		return []string{text}
	}

	sentences := make([]string, 0, len(doc.Sentences()))
	for _, s := range doc.Sentences() {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

// LoadFunc builds a model.
type LoadFunc func() (*prose.Model, error)

// Loader initializes a Pipeline exactly once, on first call to Pipeline.
// Concurrent first callers block until the single load finishes; a failed
// load is remembered and returned to every caller.
type Loader struct {
	source string
	loads  atomic.Int32
	get    func() (*Pipeline, error)
}

// NewLoader returns a Loader for the model stored in modelDir,
// or for the model bundled with the library when modelDir is empty.
func NewLoader(modelDir string, logger *zap.Logger) *Loader {
	source := "bundled"
	load := loadBundledModel
	if modelDir != "" {
		source = modelDir
		load = func() (*prose.Model, error) { return prose.ModelFromDisk(modelDir), nil }
	}
	return NewLoaderFunc(source, load, logger)
}

// NewLoaderFunc returns a Loader backed by an arbitrary LoadFunc.
func NewLoaderFunc(source string, load LoadFunc, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Loader{source: source}
	l.get = sync.OnceValues(func() (*Pipeline, error) {
		l.loads.Add(1)
		start := time.Now()

		model, err := safeLoad(load)
		if err == nil && model == nil {
			err = fmt.Errorf("loader returned no model")
		}
		if err != nil {
			logger.Error("language model failed to load", zap.String("source", source), zap.Error(err))
			return nil, &ModelUnavailableError{Source: source, Cause: err}
		}

		logger.Info("language model loaded", zap.String("source", source), zap.Duration("elapsed", time.Since(start)))
		return &Pipeline{model: model}, nil
	})
	return l
}

// Pipeline returns the shared pipeline, loading the model on first use.
// The error, if any, is a *ModelUnavailableError.
func (l *Loader) Pipeline() (*Pipeline, error) {
	return l.get()
}

// Source names where the model is loaded from.
func (l *Loader) Source() string {
	return l.source
}

// Loads reports how many times the underlying LoadFunc has run (0 or 1).
func (l *Loader) Loads() int {
	return int(l.loads.Load())
}

// safeLoad converts a panicking loader into an error.
func safeLoad(load LoadFunc) (model *prose.Model, err error) {
	defer func() {
		if r := recover(); r != nil {
			model, err = nil, fmt.Errorf("panic while loading model: %v", r)
		}
	}()
	return load()
}

// loadBundledModel builds the default tagger and entity model by creating an
// empty document and keeping the model it initialized.
func loadBundledModel() (*prose.Model, error) {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}
	return doc.Model, nil
}

var (
	sharedOnce   sync.Once
	sharedLoader *Loader
)

// Shared returns the process-wide Loader for the bundled model.
func Shared() *Loader {
	sharedOnce.Do(func() {
		sharedLoader = NewLoader("", nil)
	})
	return sharedLoader
}
