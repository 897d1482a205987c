package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/importer"
)

type questionResponse struct {
	ID       string                  `json:"id"`
	Position int                     `json:"position"`
	Text     string                  `json:"text"`
	Type     domain.QuestionType     `json:"type"`
	Required bool                    `json:"required"`
	Options  []domain.QuestionOption `json:"options,omitempty"`
}

type templateResponse struct {
	ID             string                 `json:"id"`
	ShortID        string                 `json:"short_id"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	Category       string                 `json:"category,omitempty"`
	Status         domain.TemplateStatus  `json:"status"`
	MaxScore       int                    `json:"max_score"`
	SeverityLevels []domain.SeverityLevel `json:"severity_levels"`
	Questions      []questionResponse     `json:"questions,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	ArchivedAt     *time.Time             `json:"archived_at,omitempty"`
}

func toTemplateResponse(t *domain.AssessmentTemplate, withQuestions bool) templateResponse {
	out := templateResponse{
		ID:             t.ID,
		ShortID:        t.ShortID,
		Title:          t.Title,
		Description:    t.Description,
		Category:       t.Category,
		Status:         t.Status,
		MaxScore:       t.Scoring.MaxScore,
		SeverityLevels: t.Scoring.SeverityLevels,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		ArchivedAt:     t.ArchivedAt,
	}
	if out.SeverityLevels == nil {
		out.SeverityLevels = []domain.SeverityLevel{}
	}
	if withQuestions {
		for _, q := range t.Questions {
			out.Questions = append(out.Questions, questionResponse{
				ID:       q.ID,
				Position: q.Position,
				Text:     q.Text,
				Type:     q.Type,
				Required: q.Required,
				Options:  q.Options,
			})
		}
	}
	return out
}

type resultResponse struct {
	ReferenceCode   string          `json:"reference_code"`
	TemplateID      string          `json:"template_id"`
	Respondent      string          `json:"respondent,omitempty"`
	TotalScore      int             `json:"total_score"`
	MaxScore        int             `json:"max_score"`
	Percent         float64         `json:"percent"`
	Severity        string          `json:"severity,omitempty"`
	SeverityColor   string          `json:"severity_color,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
	Answers         []domain.Answer `json:"answers"`
	CompletedAt     time.Time       `json:"completed_at"`
}

func toResultResponse(r *domain.AssessmentResult) resultResponse {
	return resultResponse{
		ReferenceCode:   r.ReferenceCode,
		TemplateID:      r.TemplateID,
		Respondent:      r.Respondent,
		TotalScore:      r.TotalScore,
		MaxScore:        r.MaxScore,
		Percent:         r.Percent(),
		Severity:        r.SeverityName,
		SeverityColor:   r.SeverityColor,
		Recommendations: r.Recommendations,
		Answers:         r.Answers,
		CompletedAt:     r.CompletedAt,
	}
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("all") == "true"
	templates, err := s.templates.List(r.Context(), includeArchived)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	out := make([]templateResponse, 0, len(templates))
	for _, t := range templates {
		out = append(out, toTemplateResponse(t, false))
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toTemplateResponse(t, true))
}

// handleUpdateScoring replaces a template's severity levels. An omitted
// max_score keeps the stored maximum.
func (s *Server) handleUpdateScoring(w http.ResponseWriter, r *http.Request) {
	body, err := importer.DecodeScoring(r.Body)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	rs := importer.ConvertScoring(body, nil)
	t, err := s.templates.UpdateScoring(r.Context(), chi.URLParam(r, "ref"), rs)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toTemplateResponse(t, false))
}

type submitRequest struct {
	Respondent string          `json:"respondent"`
	Answers    []domain.Answer `json:"answers"`
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	res, err := s.assessments.Submit(r.Context(), chi.URLParam(r, "ref"), req.Respondent, req.Answers)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, toResultResponse(res))
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	res, err := s.assessments.GetResult(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toResultResponse(res))
}
