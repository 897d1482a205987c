package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/mindwell/internal/importer"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/alexanderramin/mindwell/internal/service"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error:   &apiError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// respondServiceError maps domain errors onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without detail.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *scoring.ValidationError
	switch {
	case errors.As(err, &verr) && !errors.Is(err, service.ErrNotPublishable):
		s.respondError(w, http.StatusUnprocessableEntity, "invalid_scoring", verr.Message)
	case errors.Is(err, repository.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, scoring.ErrInvalidArgument), errors.Is(err, scoring.ErrInvalidColor):
		s.respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, service.ErrTemplateArchived):
		s.respondError(w, http.StatusConflict, "template_archived", err.Error())
	case errors.Is(err, service.ErrNotPublishable):
		s.respondError(w, http.StatusUnprocessableEntity, "not_publishable", err.Error())
	case errors.Is(err, scoring.ErrUnknownQuestion),
		errors.Is(err, scoring.ErrUnansweredQuestion),
		errors.Is(err, scoring.ErrUnknownOption),
		errors.Is(err, scoring.ErrAnswerKind):
		s.respondError(w, http.StatusUnprocessableEntity, "invalid_answers", err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type validationResponse struct {
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
	Level    string `json:"level,omitempty"`
	Index    *int   `json:"index,omitempty"`
	Expected *int   `json:"expected,omitempty"`
	Actual   *int   `json:"actual,omitempty"`
}

func toValidationResponse(res scoring.Result) validationResponse {
	if res.Valid {
		return validationResponse{Valid: true}
	}
	out := validationResponse{
		Reason:  string(res.Reason),
		Message: res.Message,
		Level:   res.Level,
	}
	if res.Index >= 0 {
		idx := res.Index
		out.Index = &idx
	}
	if res.Reason != scoring.NoLevelsDefined {
		expected, actual := res.Expected, res.Actual
		out.Expected, out.Actual = &expected, &actual
	}
	return out
}

// handleValidateScoring always answers 200 for a readable body. An invalid
// rule set is reported in the payload, not as an HTTP error.
func (s *Server) handleValidateScoring(w http.ResponseWriter, r *http.Request) {
	body, err := importer.DecodeScoring(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}
	if body.MaxScore == nil {
		s.respondError(w, http.StatusBadRequest, "invalid_argument", "max_score is required")
		return
	}

	rs := importer.ConvertScoring(body, nil)
	s.respondJSON(w, http.StatusOK, toValidationResponse(scoring.ValidateRuleSet(rs)))
}

type rgbaRequest struct {
	Hex   string   `json:"hex"`
	Alpha *float64 `json:"alpha"`
}

func (s *Server) handleHexToRGBA(w http.ResponseWriter, r *http.Request) {
	var req rgbaRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_argument", "invalid JSON body")
		return
	}

	alpha := 1.0
	if req.Alpha != nil {
		alpha = *req.Alpha
	}
	rgba, err := scoring.HexToRGBA(req.Hex, alpha)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_color", err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"rgba": rgba})
}
