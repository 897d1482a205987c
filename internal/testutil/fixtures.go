package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/google/uuid"
)

var testShortIDCounter atomic.Int64

// TemplateOption customises a fixture template.
type TemplateOption func(*domain.AssessmentTemplate)

func WithShortID(id string) TemplateOption {
	return func(t *domain.AssessmentTemplate) {
		t.ShortID = id
	}
}

func WithStatus(s domain.TemplateStatus) TemplateOption {
	return func(t *domain.AssessmentTemplate) {
		t.Status = s
	}
}

// WithLevels replaces the severity levels but keeps MaxScore.
func WithLevels(levels ...domain.SeverityLevel) TemplateOption {
	return func(t *domain.AssessmentTemplate) {
		t.Scoring.SeverityLevels = levels
	}
}

func WithMaxScore(m int) TemplateOption {
	return func(t *domain.AssessmentTemplate) {
		t.Scoring.MaxScore = m
	}
}

func WithQuestions(qs ...domain.Question) TemplateOption {
	return func(t *domain.AssessmentTemplate) {
		t.Questions = qs
	}
}

// Level builds a severity level for table-driven fixtures.
func Level(name string, min, max int) domain.SeverityLevel {
	return domain.SeverityLevel{Name: name, Range: domain.ScoreRange{Min: min, Max: max}}
}

// ScaleQuestion returns a required 0-3 frequency item.
func ScaleQuestion(position int, text string) domain.Question {
	return domain.Question{
		ID:       uuid.New().String(),
		Position: position,
		Text:     text,
		Type:     domain.QuestionScale,
		Required: true,
		Options: []domain.QuestionOption{
			{Label: "Not at all", Value: 0},
			{Label: "Several days", Value: 1},
			{Label: "More than half the days", Value: 2},
			{Label: "Nearly every day", Value: 3},
		},
	}
}

// NewTestTemplate returns a draft template with two scale questions
// (max score 6) and three contiguous severity levels.
func NewTestTemplate(title string, opts ...TemplateOption) *domain.AssessmentTemplate {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.AssessmentTemplate{
		ID:       uuid.New().String(),
		ShortID:  fmt.Sprintf("TST%02d", testShortIDCounter.Add(1)),
		Title:    title,
		Category: "test",
		Status:   domain.TemplateDraft,
		Questions: []domain.Question{
			ScaleQuestion(0, "Little interest or pleasure in doing things"),
			ScaleQuestion(1, "Feeling down, depressed, or hopeless"),
		},
		Scoring: domain.ScoringRuleSet{
			MaxScore: 6,
			SeverityLevels: []domain.SeverityLevel{
				{Name: "Minimal", Range: domain.ScoreRange{Min: 0, Max: 2}, Color: "#8ec07c", Recommendations: []string{"No action needed"}},
				{Name: "Moderate", Range: domain.ScoreRange{Min: 3, Max: 4}, Color: "#fabd2f"},
				{Name: "Severe", Range: domain.ScoreRange{Min: 5, Max: 6}, Color: "#fb4934", Recommendations: []string{"Contact a counselor"}},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	for i := range t.Questions {
		t.Questions[i].TemplateID = t.ID
	}
	return t
}
