package skills

import (
	"strings"
	"unicode"
)

// Run separators. A comma, semicolon or pipe ends a run so an n-gram never
// spans two list items; a slash splits tokens but keeps them in one run
// ("CI/CD" reads as "ci cd").
const (
	runSeparators   = ",;|"
	tokenSeparators = "/"
)

// tokenize lower-cases text and splits it into runs of tokens. N-grams are
// only formed within a run. Punctuation wrapping a token is dropped and ends
// the run on that side; "+", "#" and inner "." or "-" are kept since they are
// part of names like "c++", "c#", "node.js" and "scikit-learn".
func tokenize(text string) [][]string {
	var (
		runs    [][]string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			runs = append(runs, current)
			current = nil
		}
	}

	for _, field := range strings.Fields(strings.ToLower(text)) {
		for _, piece := range splitField(field) {
			if piece.breakBefore {
				flush()
			}
			token, leading, trailing := trimToken(piece.text)
			if leading {
				flush()
			}
			if token != "" {
				current = append(current, token)
			}
			if trailing || piece.breakAfter {
				flush()
			}
		}
	}
	flush()

	return runs
}

// normalizeTerm reduces a vocabulary entry to the form tokenize produces
// for the same words, joined by single spaces.
func normalizeTerm(term string) string {
	var words []string
	for _, run := range tokenize(term) {
		words = append(words, run...)
	}
	return strings.Join(words, " ")
}

type fieldPiece struct {
	text        string
	breakBefore bool
	breakAfter  bool
}

func splitField(field string) []fieldPiece {
	var pieces []fieldPiece
	start := 0
	pendingBreak := false
	for i, r := range field {
		switch {
		case strings.ContainsRune(runSeparators, r):
			pieces = append(pieces, fieldPiece{text: field[start:i], breakBefore: pendingBreak, breakAfter: true})
			pendingBreak = true
			start = i + 1
		case strings.ContainsRune(tokenSeparators, r):
			pieces = append(pieces, fieldPiece{text: field[start:i], breakBefore: pendingBreak})
			pendingBreak = false
			start = i + 1
		}
	}
	return append(pieces, fieldPiece{text: field[start:], breakBefore: pendingBreak})
}

// trimToken strips wrapping punctuation and a possessive "'s", and reports
// whether anything was removed from each side.
func trimToken(s string) (token string, leading, trailing bool) {
	trimmed := strings.TrimLeftFunc(s, isLeadingWrap)
	leading = len(trimmed) != len(s)
	token = strings.TrimRightFunc(trimmed, isTrailingWrap)
	for _, suffix := range possessives {
		if stem, ok := strings.CutSuffix(token, suffix); ok && stem != "" {
			token = strings.TrimRightFunc(stem, isTrailingWrap)
			break
		}
	}
	trailing = len(token) != len(trimmed)
	return token, leading, trailing
}

var possessives = []string{"'s", "\u2019s"}

func isLeadingWrap(r rune) bool {
	if r == '.' || r == '#' {
		return false
	}
	return isWrap(r)
}

func isTrailingWrap(r rune) bool {
	if r == '+' || r == '#' {
		return false
	}
	return isWrap(r)
}

func isWrap(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
