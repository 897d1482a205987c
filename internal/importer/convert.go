package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/google/uuid"
)

// Convert transforms a validated TemplateImport into a domain template ready
// for persistence. Call ValidateTemplateImport first; Convert assumes the
// import is valid.
func Convert(t *TemplateImport) (*domain.AssessmentTemplate, error) {
	now := time.Now().UTC()
	id := uuid.New().String()

	status := domain.TemplateStatus(domain.CoalesceStr(t.Status, string(domain.TemplateDraft)))
	if !domain.ValidTemplateStatuses[string(status)] {
		return nil, fmt.Errorf("status: invalid value %q", t.Status)
	}

	questions := convertQuestions(id, t.Questions)
	tmpl := &domain.AssessmentTemplate{
		ID:          id,
		ShortID:     strings.ToUpper(t.ShortID),
		Title:       strings.TrimSpace(t.Title),
		Description: t.Description,
		Category:    t.Category,
		Status:      status,
		Questions:   questions,
		Scoring:     ConvertScoring(&t.Scoring, questions),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if status == domain.TemplateArchived {
		tmpl.ArchivedAt = &now
	}
	return tmpl, nil
}

// ConvertScoring builds a rule set, deriving MaxScore from questions when the
// import leaves it out.
func ConvertScoring(s *ScoringImport, questions []domain.Question) domain.ScoringRuleSet {
	return domain.ScoringRuleSet{
		MaxScore:       domain.IntFromPtrWithDefault(scoring.MaxScore(questions), s.MaxScore.intPtr()),
		SeverityLevels: convertLevels(s.SeverityLevels),
	}
}

func convertQuestions(templateID string, in []QuestionImport) []domain.Question {
	out := make([]domain.Question, 0, len(in))
	for i, q := range in {
		dq := domain.Question{
			ID:         uuid.New().String(),
			TemplateID: templateID,
			Position:   i,
			Text:       strings.TrimSpace(q.Text),
			Type:       domain.QuestionType(q.Type),
			Required:   domain.BoolFromPtrWithDefault(true, q.Required),
		}
		for _, o := range q.Options {
			dq.Options = append(dq.Options, domain.QuestionOption{Label: o.Label, Value: int(o.Value)})
		}
		out = append(out, dq)
	}
	return out
}

func convertLevels(in []LevelImport) []domain.SeverityLevel {
	if in == nil {
		return nil
	}
	out := make([]domain.SeverityLevel, len(in))
	for i, l := range in {
		out[i] = domain.SeverityLevel{
			Name:            strings.TrimSpace(l.Name),
			Range:           domain.ScoreRange{Min: int(l.Range.Min), Max: int(l.Range.Max)},
			Color:           l.Color,
			Recommendations: l.Recommendations,
		}
	}
	return out
}
