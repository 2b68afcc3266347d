package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Job description formats.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// JobDescription is a cleaned job description ready for scoring.
type JobDescription struct {
	Text   string `json:"text"`
	Format string `json:"format"`
	Source string `json:"source,omitempty"`
	Hash   string `json:"hash"`
}

// Error reports a failure to ingest a job description.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingest %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingest %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Normalize cleans raw job description content. With FormatHTML, or with an
// empty format and content that looks like HTML, the main text is extracted
// first.
func Normalize(content, format string) (*JobDescription, error) {
	if format == "" {
		format = FormatText
		if LooksLikeHTML(content) {
			format = FormatHTML
		}
	}

	text := content
	switch format {
	case FormatText:
	case FormatHTML:
		extracted, err := ExtractMainText(content, JobPostingSelectors())
		if err != nil {
			return nil, err
		}
		text = extracted
	default:
		return nil, &Error{Source: format, Message: "unsupported job description format"}
	}

	cleaned := CleanText(text)
	return &JobDescription{
		Text:   cleaned,
		Format: format,
		Hash:   computeHash(cleaned),
	}, nil
}

// LoadFile reads a job description from disk. Files ending in .html or .htm
// are treated as HTML, everything else as text.
func LoadFile(path string) (*JobDescription, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Source: path, Message: "file not found", Cause: err}
		}
		return nil, &Error{Source: path, Message: "failed to read file", Cause: err}
	}

	format := FormatText
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		format = FormatHTML
	}

	jd, err := Normalize(string(content), format)
	if err != nil {
		return nil, err
	}
	jd.Source = path
	return jd, nil
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
