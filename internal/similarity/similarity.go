// Package similarity scores the lexical overlap of two texts with TF-IDF
// weighted cosine similarity.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// scorePrecision is the number of decimals a score is rounded to, so that
// floating-point noise cannot push a self-comparison below 1.
const scorePrecision = 1e12

// Vector is an L2-normalized TF-IDF vector keyed by term.
type Vector map[string]float64

// Tokenize lower-cases text and returns its terms with stop words removed.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		if !IsStopWord(term) {
			terms = append(terms, term)
		}
	}
	return terms
}

// Vectorizer builds TF-IDF vectors over a corpus fit from the documents
// it is given. It holds no state between calls.
type Vectorizer struct {
	tokenize func(string) []string
}

// NewVectorizer returns a Vectorizer using Tokenize.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{tokenize: Tokenize}
}

// FitTransform fits the vocabulary and document frequencies jointly on docs
// and returns one vector per document, in order. Term weights are raw counts
// times the smoothed IDF ln((1+n)/(1+df))+1, then L2-normalized. A document
// with no surviving terms yields an empty vector.
func (v *Vectorizer) FitTransform(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.tokenize(doc) {
			counts[i][term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	n := float64(len(docs))
	vectors := make([]Vector, len(docs))
	for i, tf := range counts {
		vec := make(Vector, len(tf))
		for term, count := range tf {
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			vec[term] = float64(count) * idf
		}
		if norm := vec.norm(); norm > 0 {
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

// Score returns the cosine similarity of two texts over a corpus of exactly
// those two documents. It is 0 when either text has no surviving terms.
func (v *Vectorizer) Score(resumeText, jobText string) float64 {
	vectors := v.FitTransform([]string{resumeText, jobText})
	if len(vectors[0]) == 0 || len(vectors[1]) == 0 {
		return 0
	}
	return clamp(Cosine(vectors[0], vectors[1]))
}

var defaultVectorizer = NewVectorizer()

// Score returns the TF-IDF cosine similarity of two texts, in [0, 1].
func Score(resumeText, jobText string) float64 {
	return defaultVectorizer.Score(resumeText, jobText)
}

// Cosine returns the cosine of the angle between two vectors, or 0 when
// either is empty. Terms are visited in sorted order so the result does not
// depend on map iteration.
func Cosine(a, b Vector) float64 {
	normA, normB := a.norm(), b.norm()
	if normA == 0 || normB == 0 {
		return 0
	}
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for _, term := range a.terms() {
		dot += a[term] * b[term]
	}
	return dot / (normA * normB)
}

// Percent converts a score to a percentage rounded to 2 decimals.
func Percent(score float64) float64 {
	return math.Round(score*100*100) / 100
}

func (v Vector) terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func (v Vector) norm() float64 {
	var sum float64
	for _, term := range v.terms() {
		sum += v[term] * v[term]
	}
	return math.Sqrt(sum)
}

func clamp(score float64) float64 {
	score = math.Round(score*scorePrecision) / scorePrecision
	switch {
	case math.IsNaN(score), score < 0:
		return 0
	case score > 1:
		return 1
	}
	return score
}
