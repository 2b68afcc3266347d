// Package keywords extracts normalized keyword sets from free text.
package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// MinLength is the shortest token kept as a keyword. Shorter tokens such as
// "CSS" or "Git" are dropped on purpose; existing scores depend on it.
const MinLength = 4

// Set is an unordered collection of lowercase keywords.
type Set map[string]struct{}

// Extract splits text on word boundaries and returns the lowercase tokens made
// only of ASCII letters and at least MinLength long.
func Extract(text string) Set {
	set := make(Set)
	for _, word := range strings.FieldsFunc(text, isWordSeparator) {
		if len(word) < MinLength || !isASCIIAlpha(word) {
			continue
		}
		set[strings.ToLower(word)] = struct{}{}
	}
	return set
}

// isWordSeparator reports whether r ends a word. Letters, digits and
// underscores are word characters in any script.
func isWordSeparator(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func isASCIIAlpha(word string) bool {
	for i := 0; i < len(word); i++ {
		c := word[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// Len returns the number of keywords in the set.
func (s Set) Len() int {
	return len(s)
}

// Contains reports whether keyword is in the set.
func (s Set) Contains(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Intersect returns the keywords present in both sets.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set)
	for k := range small {
		if large.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns the keywords in s that are not in other.
func (s Set) Difference(other Set) Set {
	out := make(Set)
	for k := range s {
		if !other.Contains(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Sorted returns the keywords in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
