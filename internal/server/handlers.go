package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-agent/internal/enhance"
	"github.com/jonathan/resume-agent/internal/ingestion"
	"github.com/jonathan/resume-agent/internal/logger"
	"github.com/jonathan/resume-agent/internal/metrics"
	"github.com/jonathan/resume-agent/internal/schemas"
	"github.com/jonathan/resume-agent/internal/scoring"
	"github.com/jonathan/resume-agent/internal/types"
)

// handleATSScore scores a résumé against an optional job description.
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req types.ScoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		s.writeError(w, r, toValidationError(err))
		return
	}

	if s.cfg.StrictSchema {
		var raw struct {
			Resume json.RawMessage `json:"resume"`
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		if len(raw.Resume) == 0 {
			raw.Resume = json.RawMessage("null")
		}
		if err := schemas.ValidateResume(raw.Resume); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	jobDescription := req.JobDescription
	if req.JobDescriptionFormat == ingestion.FormatHTML {
		jd, err := ingestion.Normalize(jobDescription, ingestion.FormatHTML)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		jobDescription = jd.Text
	}

	result := scoring.Score(req.Resume, jobDescription)
	metrics.ObserveScore(result)

	log.Debug("résumé scored",
		zap.Int("score", result.Score),
		zap.Int("gaps", len(result.Gaps)),
		zap.String("job_description", logger.Truncate(jobDescription, 80)),
	)

	s.jsonResponse(w, http.StatusOK, result)
}

// handleEnhance applies the enhancement rules to a résumé and reports which fired.
func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resume types.Resume
	if err := json.Unmarshal(body, &resume); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if s.cfg.StrictSchema {
		if err := schemas.ValidateResume(body); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	enhanced := enhance.Enhance(resume)
	changes := enhance.Diff(resume, enhanced)
	metrics.ObserveEnhancement(changes)

	log.Debug("résumé enhanced", zap.Strings("changes", changes))

	s.jsonResponse(w, http.StatusOK, types.EnhanceResponse{
		Enhanced: enhanced,
		Changes:  changes,
	})
}

// readBody reads the request body up to the configured limit.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	limit := s.cfg.MaxBodyBytes
	if limit <= 0 {
		return io.ReadAll(r.Body)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrPayloadTooLarge{Limit: maxErr.Limit}
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// writeError maps err to a status and writes it as JSON. Schema violations
// also list the offending fields.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal error")
		return
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		s.jsonResponse(w, status, map[string]any{
			"error":  "résumé does not match schema",
			"fields": schemaErr.Fields(),
		})
		return
	}

	s.errorResponse(w, status, err.Error())
}

// toValidationError converts the first validator failure to an ErrValidation.
func toValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return &ErrValidation{Field: ve.Field(), Message: ve.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
