package types

// ScoreResult is the outcome of scoring a résumé against a job description.
type ScoreResult struct {
	Score     int       `json:"score"`
	Gaps      []string  `json:"gaps"`
	Breakdown Breakdown `json:"breakdown"`
}

// Breakdown holds the individual sub-scores composing a ScoreResult.
type Breakdown struct {
	Keyword         int      `json:"keyword"`
	Section         int      `json:"section"`
	Quality         int      `json:"quality"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// ScoreRequest is the body of an ATS scoring request.
type ScoreRequest struct {
	Resume               Resume `json:"resume"`
	JobDescription       string `json:"job_description" validate:"max=100000"`
	JobDescriptionFormat string `json:"job_description_format,omitempty" validate:"omitempty,oneof=text html"`
}

// EnhanceResponse is the body returned by the enhance endpoint.
type EnhanceResponse struct {
	Enhanced Resume   `json:"enhanced"`
	Changes  []string `json:"changes"`
}
