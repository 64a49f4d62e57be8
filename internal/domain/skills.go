package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CanonicalSkill normalizes a free-text skill label: trim, first rune upper,
// rest lower. Labels are canonicalized once at write time and compared exactly
// thereafter.
func CanonicalSkill(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// CanonicalSkills canonicalizes a list, dropping empties and case-insensitive
// duplicates while preserving first-occurrence order.
func CanonicalSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		c := CanonicalSkill(s)
		if c == "" {
			continue
		}
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// SkillIntersection returns the labels present in both lists, in the order of
// the first list. Comparison is exact over canonical labels.
func SkillIntersection(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}

func ContainsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

// MutualMatch reports whether a swap is proposable between two users: each
// must offer at least one skill the other wants.
func MutualMatch(a, b User) bool {
	return len(SkillIntersection(a.SkillsOffered, b.SkillsWanted)) > 0 &&
		len(SkillIntersection(b.SkillsOffered, a.SkillsWanted)) > 0
}
