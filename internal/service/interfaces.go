package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/importer"
)

var (
	// ErrTemplateArchived is returned when a response is submitted to an
	// archived template.
	ErrTemplateArchived = errors.New("template is archived")

	// ErrNotPublishable is returned when a template without questions or
	// with invalid scoring is published.
	ErrNotPublishable = errors.New("template cannot be published")
)

type TemplateService interface {
	Import(ctx context.Context, filePath string) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, t *importer.TemplateImport) (*ImportResult, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.AssessmentTemplate, error)
	Get(ctx context.Context, ref string) (*domain.AssessmentTemplate, error)
	UpdateScoring(ctx context.Context, ref string, rs domain.ScoringRuleSet) (*domain.AssessmentTemplate, error)
	Publish(ctx context.Context, ref string) error
	Archive(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}

// ImportResult holds the outcome of a template import.
type ImportResult struct {
	Template      *domain.AssessmentTemplate
	QuestionCount int
	LevelCount    int
}

type AssessmentService interface {
	Submit(ctx context.Context, templateRef, respondent string, answers []domain.Answer) (*domain.AssessmentResult, error)
	GetResult(ctx context.Context, code string) (*domain.AssessmentResult, error)
	ListResults(ctx context.Context, templateRef string) ([]*domain.AssessmentResult, error)
}
