// Package schemas holds the JSON Schemas shipped with resume-agent.
package schemas

import _ "embed"

// Resume is the JSON Schema for résumé documents.
//
//go:embed resume.schema.json
var Resume string
