package profile

import (
	"regexp"
	"strings"
)

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// phonePattern: optional +country code, optional (area) code, then 2+ digit groups
	// separated by at most one space, tab, dot or hyphen. Never spans lines.
	phonePattern = regexp.MustCompile(`(?:\+\d{1,3}[ \t.\-]?)?(?:\(\d{1,4}\)[ \t.\-]?)?\d{2,5}(?:[ \t.\-]?\d{2,5}){1,4}`)

	digitGroups = regexp.MustCompile(`\d+`)
	yearRange   = regexp.MustCompile(`^(?:19|20)\d{2}[\s.\-]+(?:19|20)\d{2}$`)
)

// FindEmail returns the first email address in text, or "".
func FindEmail(text string) string {
	return emailPattern.FindString(text)
}

// FindPhone returns the first phone number in text, normalized, or "".
// Candidates embedded in longer digit runs, outside 7-15 digits, or shaped like
// a year range are skipped.
func FindPhone(text string) string {
	for _, loc := range phonePattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigitOrPlus(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}

		candidate := text[start:end]
		if yearRange.MatchString(candidate) {
			continue
		}
		if n := countDigits(candidate); n < minPhoneDigits || n > maxPhoneDigits {
			continue
		}
		return NormalizePhone(candidate)
	}
	return ""
}

// NormalizePhone strips decorative punctuation, keeping the digit grouping:
// groups are joined with "-" and a leading "+" is retained.
func NormalizePhone(raw string) string {
	groups := digitGroups.FindAllString(raw, -1)
	if len(groups) == 0 {
		return ""
	}
	normalized := strings.Join(groups, "-")
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		normalized = "+" + normalized
	}
	return normalized
}

// Digits returns only the digits of a phone number.
func Digits(phone string) string {
	return strings.Join(digitGroups.FindAllString(phone, -1), "")
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			n++
		}
	}
	return n
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isDigitOrPlus(b byte) bool {
	return isDigit(b) || b == '+'
}
