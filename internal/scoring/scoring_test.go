package scoring

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jonathan/resume-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResume() types.Resume {
	return types.Resume{
		types.KeyName:       types.Text("Ada Lovelace"),
		types.KeySummary:    types.Text("Experienced backend engineer building reliable distributed systems."),
		types.KeySkills:     types.List("Python", "Docker", "Kubernetes"),
		types.KeyExperience: types.List("Platform team lead at Example Corp"),
		types.KeyEducation:  types.List("BSc Computer Science"),
		types.KeyProjects:   types.List("Open source scheduler"),
	}
}

func TestScore_EmptyResumeNoJob(t *testing.T) {
	result := Score(types.Resume{}, "")

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, []string{
		"Missing: skills",
		"Missing: experience",
		"Missing: education",
		"Missing: projects",
	}, result.Gaps)
	assert.Equal(t, 10, result.Breakdown.Keyword)
	assert.Equal(t, 0, result.Breakdown.Section)
	assert.Equal(t, 0, result.Breakdown.Quality)
	assert.Empty(t, result.Breakdown.MatchedKeywords)
	assert.Empty(t, result.Breakdown.MissingKeywords)
}

func TestScore_NilResume(t *testing.T) {
	result := Score(nil, "python developer")

	assert.Equal(t, 0, result.Breakdown.Keyword)
	assert.Len(t, result.Gaps, 4)
	assert.Equal(t, []string{"developer", "python"}, result.Breakdown.MissingKeywords)
}

func TestScore_NoJobDescriptionAlwaysTen(t *testing.T) {
	resume := fullResume()
	resume[types.KeyExperience] = types.List(strings.Repeat("Delivered measurable outcomes across teams. ", 30))

	for _, jd := range []string{"", "   ", "Go SQL CSS AWS", "123 456 !!!"} {
		result := Score(resume, jd)
		assert.Equal(t, KeywordScoreNoJob, result.Breakdown.Keyword, "job description %q", jd)
	}
}

func TestScore_FullOverlap(t *testing.T) {
	resume := types.Resume{
		types.KeySummary: types.Text("Python developer building distributed systems"),
	}
	result := Score(resume, "python DEVELOPER building Distributed systems")

	assert.Equal(t, KeywordScoreMax, result.Breakdown.Keyword)
	assert.Equal(t, []string{"building", "developer", "distributed", "python", "systems"}, result.Breakdown.MatchedKeywords)
	assert.Empty(t, result.Breakdown.MissingKeywords)
}

func TestScore_KeywordRatioFloors(t *testing.T) {
	tests := []struct {
		name     string
		skills   []string
		jd       string
		expected int
	}{
		{name: "half", skills: []string{"Python", "Docker"}, jd: "python golang docker kubernetes", expected: 25},
		{name: "one third", skills: []string{"Python"}, jd: "python golang docker", expected: 16},
		{name: "two thirds", skills: []string{"Python", "Docker"}, jd: "python golang docker", expected: 33},
		{name: "none", skills: []string{"Rust"}, jd: "python golang docker", expected: 0},
		{name: "exact integer", skills: make29Matches(), jd: strings.Join(make50Keywords(), " "), expected: 29},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume := types.Resume{types.KeySkills: types.List(tt.skills...)}
			assert.Equal(t, tt.expected, Score(resume, tt.jd).Breakdown.Keyword)
		})
	}
}

func make50Keywords() []string {
	words := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		words = append(words, "word"+string(rune('a'+i/26))+string(rune('a'+i%26)))
	}
	return words
}

func make29Matches() []string {
	return make50Keywords()[:29]
}

func TestSectionScore(t *testing.T) {
	tests := []struct {
		name         string
		resume       types.Resume
		expected     int
		expectedGaps []string
	}{
		{
			name:         "all present",
			resume:       fullResume(),
			expected:     28,
			expectedGaps: []string{},
		},
		{
			name: "empty values count as missing",
			resume: types.Resume{
				types.KeySkills:     types.List(),
				types.KeyExperience: types.Text(""),
				types.KeyEducation:  types.List("BSc"),
			},
			expected:     7,
			expectedGaps: []string{"Missing: skills", "Missing: experience", "Missing: projects"},
		},
		{
			name: "text section counts when non-empty",
			resume: types.Resume{
				types.KeyProjects: types.Text("Built a compiler"),
			},
			expected:     7,
			expectedGaps: []string{"Missing: skills", "Missing: experience", "Missing: education"},
		},
		{
			name: "unknown keys are ignored",
			resume: types.Resume{
				"certifications": types.List("CKA"),
				"Skills":         types.List("Go"),
			},
			expected:     0,
			expectedGaps: []string{"Missing: skills", "Missing: experience", "Missing: education", "Missing: projects"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, gaps := SectionScore(tt.resume)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.expectedGaps, gaps)
		})
	}
}

func TestSectionScore_NonTextValues(t *testing.T) {
	var resume types.Resume
	body := `{"skills": 5, "experience": 0, "education": null, "projects": {"name": "x"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &resume))

	score, gaps := SectionScore(resume)
	assert.Equal(t, 14, score)
	assert.Equal(t, []string{"Missing: experience", "Missing: education"}, gaps)
}

func TestQualityScore(t *testing.T) {
	longSummary := strings.Repeat("a", 121)
	exactly120 := strings.Repeat("a", 120)
	longBlob := types.List(strings.Repeat("b", 810))

	tests := []struct {
		name     string
		resume   types.Resume
		expected int
	}{
		{name: "empty", resume: types.Resume{}, expected: 0},
		{name: "120 chars is not enough", resume: types.Resume{types.KeySummary: types.Text(exactly120)}, expected: 0},
		{name: "long summary", resume: types.Resume{types.KeySummary: types.Text(longSummary)}, expected: 8},
		{name: "signal word", resume: types.Resume{types.KeySummary: types.Text("Skilled at things")}, expected: 6},
		{name: "signal is a substring match", resume: types.Resume{types.KeySummary: types.Text("Loves ENGINEERING")}, expected: 6},
		{name: "several signals count once", resume: types.Resume{types.KeySummary: types.Text("skilled experienced engineer")}, expected: 6},
		{name: "long blob", resume: types.Resume{types.KeyProjects: longBlob}, expected: 6},
		{
			name: "long summary and signal",
			resume: types.Resume{
				types.KeySummary: types.Text(longSummary + " project"),
			},
			expected: 14,
		},
		{
			name: "everything",
			resume: types.Resume{
				types.KeySummary:  types.Text(longSummary + " engineer"),
				types.KeyProjects: longBlob,
			},
			expected: 20,
		},
		{
			name:     "multibyte characters count once",
			resume:   types.Resume{types.KeySummary: types.Text(strings.Repeat("é", 100))},
			expected: 0,
		},
		{
			name:     "list summary is rendered as text",
			resume:   types.Resume{types.KeySummary: types.List("Skilled engineer")},
			expected: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QualityScore(tt.resume))
		})
	}
}

func TestQualityScore_AllowedValues(t *testing.T) {
	allowed := map[int]bool{0: true, 6: true, 8: true, 12: true, 14: true, 20: true}
	summaries := []string{"", "short", "engineer", strings.Repeat("x", 200), strings.Repeat("x", 200) + " project"}
	blobs := []types.Section{types.List(), types.List(strings.Repeat("y", 900))}

	for _, summary := range summaries {
		for _, blob := range blobs {
			resume := types.Resume{types.KeySummary: types.Text(summary), types.KeyExperience: blob}
			got := QualityScore(resume)
			assert.True(t, allowed[got], "unexpected quality score %d", got)
			assert.LessOrEqual(t, got, QualityScoreMax)
		}
	}
}

func TestScore_Bounds(t *testing.T) {
	resume := fullResume()
	resume[types.KeySummary] = types.Text(strings.Repeat("Experienced engineer. ", 10))
	resume[types.KeyProjects] = types.List(strings.Repeat("project ", 120))
	jd := ResumeBlob(resume)

	result := Score(resume, jd)
	assert.Equal(t, KeywordScoreMax, result.Breakdown.Keyword)
	assert.Equal(t, 28, result.Breakdown.Section)
	assert.Equal(t, 20, result.Breakdown.Quality)
	assert.Equal(t, 98, result.Score)
	assert.GreaterOrEqual(t, result.Score, 0)
	assert.LessOrEqual(t, result.Score, TotalScoreMax)
}

func TestResumeBlob(t *testing.T) {
	resume := types.Resume{
		types.KeySummary: types.Text("hi"),
		types.KeySkills:  types.List("Go", "SQL"),
	}
	assert.Equal(t, "['Go', 'SQL'] hi", ResumeBlob(resume))
	assert.Equal(t, "", ResumeBlob(types.Resume{}))
}

func TestKeywordScore(t *testing.T) {
	assert.Equal(t, 10, KeywordScore("anything at all", ""))
	assert.Equal(t, 50, KeywordScore("golang services", "Golang services"))
}

func TestGapSection(t *testing.T) {
	_, gaps := SectionScore(types.Resume{})
	for i, gap := range gaps {
		section, ok := GapSection(gap)
		require.True(t, ok)
		assert.Equal(t, RequiredSections[i], section)
	}

	_, ok := GapSection("Something else")
	assert.False(t, ok)
}
