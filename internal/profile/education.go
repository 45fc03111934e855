package profile

import (
	"regexp"
	"strings"
)

// educationKeywords anchor a line or sentence as education-related.
var educationKeywords = []string{
	"education", "university", "universities", "college", "institute", "school", "academy",
	"bachelor", "bachelors", "bachelor's", "master", "masters", "master's", "associate's",
	"phd", "ph.d", "doctorate", "degree", "diploma", "qualification", "qualifications",
	"academic", "gpa", "cgpa", "b.sc", "m.sc", "bsc", "msc", "b.s", "m.s", "b.a", "m.a",
	"mba", "b.tech", "m.tech", "b.e", "m.e",
}

// educationPattern matches any keyword as a whole word, case-insensitively.
var educationPattern = buildEducationPattern(educationKeywords)

func buildEducationPattern(keywords []string) *regexp.Regexp {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])(?:` + strings.Join(quoted, "|") + `)(?:$|[^\p{L}\p{N}])`)
}

// HasEducationKeyword reports whether s mentions an education keyword as a whole word.
func HasEducationKeyword(s string) bool {
	return educationPattern.MatchString(s)
}

// findEducation returns education-related sentences verbatim, deduplicated, in document order.
// Each line is split into sentences so a long paragraph contributes only its relevant parts.
func findEducation(lines []string, splitter SentenceSplitter) []string {
	seen := make(map[string]struct{})
	education := make([]string, 0)

	for _, line := range lines {
		if !HasEducationKeyword(line) {
			continue
		}
		for _, sentence := range splitSentences(line, splitter) {
			if !HasEducationKeyword(sentence) {
				continue
			}
			if _, dup := seen[sentence]; dup {
				continue
			}
			seen[sentence] = struct{}{}
			education = append(education, sentence)
		}
	}

	return education
}

func splitSentences(line string, splitter SentenceSplitter) []string {
	if splitter == nil {
		return []string{strings.TrimSpace(line)}
	}
	sentences := splitter.Sentences(line)
	if len(sentences) == 0 {
		return []string{strings.TrimSpace(line)}
	}
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
