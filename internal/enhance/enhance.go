// Package enhance applies deterministic, rule-based touch-ups to a résumé.
package enhance

import (
	"unicode/utf8"

	"github.com/jonathan/resume-agent/internal/types"
)

// SummarySuffix is appended to summaries shorter than ShortSummaryLength.
const SummarySuffix = " Passionate learner with strong interest in real-world project applications."

// ShortSummaryLength is the length under which a summary gets SummarySuffix.
const ShortSummaryLength = 50

// Change names reported by Diff.
const (
	ChangeSummaryExtended = "summary_extended"
	ChangeSkillsDeduped   = "skills_deduplicated"
)

type options struct {
	inPlace bool
}

// Option configures Enhance.
type Option func(*options)

// InPlace makes Enhance modify and return the caller's résumé instead of a copy.
// Concurrent in-place calls on the same résumé must be serialized by the caller.
func InPlace() Option {
	return func(o *options) {
		o.inPlace = true
	}
}

// Enhance returns a copy of resume with the enhancement rules applied. The
// input is left untouched unless InPlace is given. Sections other than summary
// and skills, and sections of an unexpected kind, are never modified.
func Enhance(resume types.Resume, opts ...Option) types.Resume {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	out := resume
	if !o.inPlace || resume == nil {
		out = resume.Clone()
	}

	extendSummary(out)
	dedupeSkills(out)
	return out
}

// extendSummary appends SummarySuffix to a short text summary. The length is
// checked on every call, so a summary that already reached ShortSummaryLength
// stays as it is.
func extendSummary(resume types.Resume) {
	section, ok := resume[types.KeySummary]
	if !ok {
		return
	}
	summary, ok := section.TextValue()
	if !ok || utf8.RuneCountInString(summary) >= ShortSummaryLength {
		return
	}
	resume[types.KeySummary] = types.Text(summary + SummarySuffix)
}

// dedupeSkills removes repeated skills, keeping the first occurrence of each.
func dedupeSkills(resume types.Resume) {
	section, ok := resume[types.KeySkills]
	if !ok {
		return
	}
	items, ok := section.Items()
	if !ok {
		return
	}

	seen := make(map[string]bool, len(items))
	deduped := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		deduped = append(deduped, item)
	}
	resume[types.KeySkills] = types.List(deduped...)
}

// Diff lists which enhancement rules changed before into after.
func Diff(before, after types.Resume) []string {
	changes := make([]string, 0, 2)

	oldSummary, _ := before[types.KeySummary].TextValue()
	newSummary, _ := after[types.KeySummary].TextValue()
	if oldSummary != newSummary {
		changes = append(changes, ChangeSummaryExtended)
	}

	oldSkills, _ := before[types.KeySkills].Items()
	newSkills, _ := after[types.KeySkills].Items()
	if len(oldSkills) != len(newSkills) {
		changes = append(changes, ChangeSkillsDeduped)
	}
	return changes
}
