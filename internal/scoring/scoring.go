// Package scoring estimates how well a résumé matches a job description.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-agent/internal/keywords"
	"github.com/jonathan/resume-agent/internal/types"
)

// Keyword component
const (
	KeywordScoreMax = 50
	// KeywordScoreNoJob is awarded when the job description has no keywords.
	KeywordScoreNoJob = 10
)

// Section component. Four sections at SectionWeight give 28, so the nominal
// SectionScoreMax is never reached.
const (
	SectionScoreMax = 30
	SectionWeight   = 7
)

// Quality component
const (
	QualityScoreMax     = 20
	summaryLengthBonus  = 8
	summaryLengthMin    = 120
	summaryKeywordBonus = 6
	resumeLengthBonus   = 6
	resumeLengthMin     = 800
)

// TotalScoreMax caps the sum of the three components.
const TotalScoreMax = 100

const gapMessagePrefix = "Missing: "

// RequiredSections lists the sections checked for completeness, in the order
// gaps are reported.
var RequiredSections = []string{
	types.KeySkills,
	types.KeyExperience,
	types.KeyEducation,
	types.KeyProjects,
}

// summarySignals are matched as substrings of the lowercased summary.
var summarySignals = []string{"skilled", "project", "engineer", "experienced"}

// Score rates resume against jobDescription. An empty jobDescription means no
// job was supplied. Score never fails; absent or malformed sections count as
// empty.
func Score(resume types.Resume, jobDescription string) *types.ScoreResult {
	blob := ResumeBlob(resume)

	keyword, matched, missing := keywordComponent(blob, jobDescription)
	section, gaps := SectionScore(resume)
	quality := qualityComponent(summaryText(resume), blob)

	total := keyword + section + quality
	if total > TotalScoreMax {
		total = TotalScoreMax
	}

	return &types.ScoreResult{
		Score: total,
		Gaps:  gaps,
		Breakdown: types.Breakdown{
			Keyword:         keyword,
			Section:         section,
			Quality:         quality,
			MatchedKeywords: matched,
			MissingKeywords: missing,
		},
	}
}

// ResumeBlob renders every section to its canonical text form and joins them
// with single spaces. Sections are visited in key order; scoring only uses the
// blob's keyword set and length, neither of which depends on order.
func ResumeBlob(resume types.Resume) string {
	parts := make([]string, 0, len(resume))
	for _, key := range resume.Keys() {
		parts = append(parts, resume[key].String())
	}
	return strings.Join(parts, " ")
}

// KeywordScore returns the keyword component for a résumé blob.
func KeywordScore(blob, jobDescription string) int {
	score, _, _ := keywordComponent(blob, jobDescription)
	return score
}

// keywordComponent computes floor(50 * matched / total) over the job's keyword
// set, or the fixed no-job score when the job yields no keywords.
func keywordComponent(blob, jobDescription string) (int, []string, []string) {
	jobKeywords := keywords.Extract(jobDescription)
	if jobKeywords.Len() == 0 {
		return KeywordScoreNoJob, []string{}, []string{}
	}

	resumeKeywords := keywords.Extract(blob)
	matched := jobKeywords.Intersect(resumeKeywords)
	missing := jobKeywords.Difference(resumeKeywords)

	score := KeywordScoreMax * matched.Len() / jobKeywords.Len()
	return score, matched.Sorted(), missing.Sorted()
}

// SectionScore awards SectionWeight for each required section with content and
// returns a gap message for each one without.
func SectionScore(resume types.Resume) (int, []string) {
	score := 0
	gaps := make([]string, 0, len(RequiredSections))
	for _, key := range RequiredSections {
		if section, ok := resume[key]; ok && section.Truthy() {
			score += SectionWeight
			continue
		}
		gaps = append(gaps, gapMessagePrefix+key)
	}
	return score, gaps
}

// GapSection returns the section named by a gap message produced by SectionScore.
func GapSection(gap string) (string, bool) {
	return strings.CutPrefix(gap, gapMessagePrefix)
}

// QualityScore rates the summary and overall résumé length.
func QualityScore(resume types.Resume) int {
	return qualityComponent(summaryText(resume), ResumeBlob(resume))
}

func qualityComponent(summary, blob string) int {
	score := 0
	if utf8.RuneCountInString(summary) > summaryLengthMin {
		score += summaryLengthBonus
	}

	lower := strings.ToLower(summary)
	for _, signal := range summarySignals {
		if strings.Contains(lower, signal) {
			score += summaryKeywordBonus
			break
		}
	}

	if utf8.RuneCountInString(blob) > resumeLengthMin {
		score += resumeLengthBonus
	}
	return score
}

// summaryText returns the summary in canonical text form, or "" when absent.
func summaryText(resume types.Resume) string {
	section, ok := resume[types.KeySummary]
	if !ok {
		return ""
	}
	return section.String()
}
