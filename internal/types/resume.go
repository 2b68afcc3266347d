// Package types provides type definitions for structured data used throughout the resume-agent system.
package types

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Well-known résumé section keys.
const (
	KeyName       = "name"
	KeyEmail      = "email"
	KeyPhone      = "phone"
	KeySummary    = "summary"
	KeySkills     = "skills"
	KeyExperience = "experience"
	KeyEducation  = "education"
	KeyProjects   = "projects"
)

// SectionKind identifies which variant a Section holds.
type SectionKind int

const (
	// SectionText is free text such as a summary or a name.
	SectionText SectionKind = iota
	// SectionList is an ordered sequence of strings such as skills.
	SectionList
	// SectionOther is any other JSON value, kept verbatim.
	SectionOther
)

func (k SectionKind) String() string {
	switch k {
	case SectionText:
		return "text"
	case SectionList:
		return "list"
	default:
		return "other"
	}
}

// Section is the content of one résumé section. The zero value is empty text.
type Section struct {
	kind  SectionKind
	text  string
	items []string
	raw   json.RawMessage
}

// Text returns a text section.
func Text(s string) Section {
	return Section{kind: SectionText, text: s}
}

// List returns a list section holding a copy of items.
func List(items ...string) Section {
	return Section{kind: SectionList, items: append([]string{}, items...)}
}

// Raw returns a section holding an arbitrary JSON value. Strings and arrays of
// strings are classified as text and list sections respectively.
func Raw(msg json.RawMessage) Section {
	var s Section
	if err := s.UnmarshalJSON(msg); err != nil {
		return Section{kind: SectionOther, raw: append(json.RawMessage{}, msg...)}
	}
	return s
}

// Kind reports the variant held by the section.
func (s Section) Kind() SectionKind {
	return s.kind
}

// TextValue returns the text and true when the section is a text section.
func (s Section) TextValue() (string, bool) {
	if s.kind != SectionText {
		return "", false
	}
	return s.text, true
}

// Items returns the elements and true when the section is a list section.
// The returned slice must not be modified.
func (s Section) Items() ([]string, bool) {
	if s.kind != SectionList {
		return nil, false
	}
	return s.items, true
}

// String renders the section to its canonical text form: text as-is, lists in
// bracketed form with quoted items, anything else as compact JSON.
func (s Section) String() string {
	switch s.kind {
	case SectionText:
		return s.text
	case SectionList:
		var sb strings.Builder
		sb.WriteByte('[')
		for i, item := range s.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quoteItem(item))
		}
		sb.WriteByte(']')
		return sb.String()
	default:
		if len(s.raw) == 0 {
			return "null"
		}
		return string(s.raw)
	}
}

// Truthy reports whether the section carries content: non-empty text, a
// non-empty list, or a JSON value other than null, false, zero, "{}" or "[]".
func (s Section) Truthy() bool {
	switch s.kind {
	case SectionText:
		return s.text != ""
	case SectionList:
		return len(s.items) > 0
	}

	raw := string(s.raw)
	switch raw {
	case "", "null", "false", "{}", "[]":
		return false
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f != 0
	}
	return true
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	c := Section{kind: s.kind, text: s.text}
	if s.items != nil {
		c.items = append([]string{}, s.items...)
	}
	if s.raw != nil {
		c.raw = append(json.RawMessage{}, s.raw...)
	}
	return c
}

// UnmarshalJSON classifies the value into one of the section variants.
func (s *Section) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 {
		switch trimmed[0] {
		case '"':
			var text string
			if err := json.Unmarshal(trimmed, &text); err != nil {
				return err
			}
			*s = Section{kind: SectionText, text: text}
			return nil
		case '[':
			if items, ok := decodeStrings(trimmed); ok {
				*s = Section{kind: SectionList, items: items}
				return nil
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return err
	}
	*s = Section{kind: SectionOther, raw: json.RawMessage(compact.Bytes())}
	return nil
}

// decodeStrings decodes a JSON array whose elements are all strings. A null
// element disqualifies the array.
func decodeStrings(data []byte) ([]string, bool) {
	var ptrs []*string
	if err := json.Unmarshal(data, &ptrs); err != nil {
		return nil, false
	}
	items := make([]string, 0, len(ptrs))
	for _, p := range ptrs {
		if p == nil {
			return nil, false
		}
		items = append(items, *p)
	}
	return items, true
}

// MarshalJSON writes the section back in its original JSON shape.
func (s Section) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case SectionText:
		return json.Marshal(s.text)
	case SectionList:
		if s.items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.items)
	default:
		if len(s.raw) == 0 {
			return []byte("null"), nil
		}
		return s.raw, nil
	}
}

// quoteItem wraps a list element in single quotes, or double quotes when the
// element contains a single quote but no double quote.
func quoteItem(item string) string {
	quote := byte('\'')
	if strings.ContainsRune(item, '\'') && !strings.ContainsRune(item, '"') {
		quote = '"'
	}

	var sb strings.Builder
	sb.Grow(len(item) + 2)
	sb.WriteByte(quote)
	for _, r := range item {
		switch {
		case r == '\\':
			sb.WriteString(`\\`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == rune(quote):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(quote)
	return sb.String()
}

// Resume maps section names to their content. Unknown keys are carried through
// untouched.
type Resume map[string]Section

// Keys returns the section names in sorted order.
func (r Resume) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the résumé. A nil résumé clones to an empty one.
func (r Resume) Clone() Resume {
	c := make(Resume, len(r))
	for k, v := range r {
		c[k] = v.Clone()
	}
	return c
}
