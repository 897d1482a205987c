package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/mindwell/internal/domain"
)

// ErrNotFound is wrapped by every lookup or mutation that matched no row.
var ErrNotFound = errors.New("not found")

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.AssessmentTemplate) error
	GetByID(ctx context.Context, id string) (*domain.AssessmentTemplate, error)
	GetByShortID(ctx context.Context, shortID string) (*domain.AssessmentTemplate, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.AssessmentTemplate, error)
	ReplaceScoring(ctx context.Context, id string, rs domain.ScoringRuleSet) error
	UpdateStatus(ctx context.Context, id string, status domain.TemplateStatus) error
	Delete(ctx context.Context, id string) error
}

type ResultRepo interface {
	Create(ctx context.Context, r *domain.AssessmentResult) error
	GetByReference(ctx context.Context, code string) (*domain.AssessmentResult, error)
	ListByTemplate(ctx context.Context, templateID string) ([]*domain.AssessmentResult, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.AssessmentResult, error)
}
