package profile

import (
	"strings"
	"unicode"
)

// nameWindowLines bounds how far into the document a tagged person may appear
// and still be taken as the candidate's name.
const nameWindowLines = 5

// maxNameLength rejects long lines from the fallback rule.
const maxNameLength = 80

// NameRule is one step of the name heuristic. It returns the name and true
// when it applies.
type NameRule struct {
	Name  string
	Apply func(lines []string, tagger PersonTagger) (string, bool)
}

// NameRules is the ordered name heuristic: the first rule that applies wins.
//  1. tagged-person: the first PERSON entity within the first few non-empty lines.
//  2. first-line: the first non-empty line.
//
// The heuristic is wrong on layouts that open with something other than the
// candidate (a title banner, an address block); that is accepted.
var NameRules = []NameRule{
	{Name: "tagged-person", Apply: taggedPersonRule},
	{Name: "first-line", Apply: firstLineRule},
}

func taggedPersonRule(lines []string, tagger PersonTagger) (string, bool) {
	if tagger == nil || len(lines) == 0 {
		return "", false
	}
	// Lines are tagged one at a time: the entity chunker runs across line
	// breaks and would join the name with the next line's label.
	for _, line := range lines[:min(len(lines), nameWindowLines)] {
		for _, candidate := range tagger.PersonNames(line) {
			if plausibleName(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func firstLineRule(lines []string, _ PersonTagger) (string, bool) {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxNameLength {
			return "", false
		}
		return line, true
	}
	return "", false
}

// headingWords are resume labels and section titles the tagger mistakes for names.
var headingWords = map[string]struct{}{
	"address": {}, "contact": {}, "curriculum": {}, "education": {}, "e-mail": {},
	"email": {}, "experience": {}, "github": {}, "linkedin": {}, "mobile": {},
	"objective": {}, "phone": {}, "profile": {}, "resume": {}, "résumé": {},
	"skills": {}, "summary": {}, "tel": {}, "vitae": {},
}

// plausibleName rejects entities that are clearly not a person's name.
func plausibleName(s string) bool {
	s = strings.TrimSpace(s)
	if len([]rune(s)) < 2 || strings.Contains(s, "@") {
		return false
	}
	for _, word := range strings.Fields(s) {
		word = strings.ToLower(strings.Trim(word, ":,;.|"))
		if _, ok := headingWords[word]; ok {
			return false
		}
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// findName applies NameRules in order and reports which rule matched.
func findName(lines []string, tagger PersonTagger) (name string, rule string) {
	for _, r := range NameRules {
		if name, ok := r.Apply(lines, tagger); ok {
			return name, r.Name
		}
	}
	return "", ""
}
