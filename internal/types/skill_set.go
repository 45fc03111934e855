package types

import (
	"encoding/json"
	"sort"
	"strings"
)

// SkillSet is a set of normalized skill names.
// Names are lower-cased and single-spaced before insertion, so membership
// and set algebra operate on the normalized form only.
type SkillSet map[string]struct{}

// NormalizeSkill lower-cases a skill name and collapses internal whitespace.
func NormalizeSkill(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NewSkillSet builds a set from the given names, normalizing each one.
func NewSkillSet(names ...string) SkillSet {
	set := make(SkillSet, len(names))
	for _, name := range names {
		set.Add(name)
	}
	return set
}

// Add inserts a skill name; empty names are ignored.
func (s SkillSet) Add(name string) {
	if normalized := NormalizeSkill(name); normalized != "" {
		s[normalized] = struct{}{}
	}
}

// Contains reports whether the set holds the normalized form of name.
func (s SkillSet) Contains(name string) bool {
	_, ok := s[NormalizeSkill(name)]
	return ok
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in lexicographic order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the skills present in both sets.
func (s SkillSet) Intersect(other SkillSet) SkillSet {
	out := make(SkillSet)
	for name := range s {
		if _, ok := other[name]; ok {
			out[name] = struct{}{}
		}
	}
	return out
}

// Difference returns the skills in s that are not in other.
func (s SkillSet) Difference(other SkillSet) SkillSet {
	out := make(SkillSet)
	for name := range s {
		if _, ok := other[name]; !ok {
			out[name] = struct{}{}
		}
	}
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s SkillSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of names, normalizing each one.
func (s *SkillSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = NewSkillSet(names...)
	return nil
}
