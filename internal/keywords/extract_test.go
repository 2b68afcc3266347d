package keywords

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "empty input",
			text:     "",
			expected: []string{},
		},
		{
			name:     "non-alphabetic input",
			text:     "1234 !!! 42.0 --",
			expected: []string{},
		},
		{
			name:     "short tokens are dropped",
			text:     "CSS Git SQL Go",
			expected: []string{},
		},
		{
			name:     "lowercases and collapses duplicates",
			text:     "Python python PYTHON Docker",
			expected: []string{"docker", "python"},
		},
		{
			name:     "punctuation splits words",
			text:     "Kubernetes, Terraform; (Ansible) node.js",
			expected: []string{"ansible", "kubernetes", "node", "terraform"},
		},
		{
			name:     "words mixing letters and digits are dropped",
			text:     "python3 k8s abcd1efg html5 rust",
			expected: []string{"rust"},
		},
		{
			name:     "underscores join words",
			text:     "snake_case_name plain",
			expected: []string{"plain"},
		},
		{
			name:     "non-ASCII letters join words",
			text:     "Zürich résumé naïve build",
			expected: []string{"build"},
		},
		{
			name:     "hyphens split words",
			text:     "real-world cross-functional",
			expected: []string{"cross", "functional", "real", "world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.expected, got.Sorted())
		})
	}
}

func TestExtract_OnlyLowercaseAlphaTokens(t *testing.T) {
	texts := []string{
		"Experienced Backend Engineer with GoLang, PostgreSQL and AWS.",
		"Built CI/CD pipelines; migrated 40+ services to Kubernetes (EKS).",
		"ÄÖÜ straße ñandú — mixed Üñíçødé and ascii words",
		"\t\n tabs\tand\nnewlines  ",
	}
	valid := regexp.MustCompile(`^[a-z]{4,}$`)

	for _, text := range texts {
		for kw := range Extract(text) {
			assert.Regexp(t, valid, kw, "keyword from %q", text)
		}
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Designed distributed systems; mentored engineers; shipped features weekly."
	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first, second)
	assert.Equal(t, first.Sorted(), second.Sorted())
}

func TestSet_Operations(t *testing.T) {
	a := Extract("python docker kubernetes terraform")
	b := Extract("docker terraform ansible")

	assert.Equal(t, 4, a.Len())
	assert.True(t, a.Contains("docker"))
	assert.False(t, a.Contains("ansible"))
	assert.Equal(t, []string{"docker", "terraform"}, a.Intersect(b).Sorted())
	assert.Equal(t, []string{"docker", "terraform"}, b.Intersect(a).Sorted())
	assert.Equal(t, []string{"ansible"}, b.Difference(a).Sorted())
	assert.Equal(t, []string{"kubernetes", "python"}, a.Difference(b).Sorted())
}
