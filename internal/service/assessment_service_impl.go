package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mindwell/internal/db"
	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// referenceAlphabet omits I and O so codes can be read aloud.
const (
	referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	referenceLength   = 10
	referencePrefix   = "R-"
)

type assessmentService struct {
	templates repository.TemplateRepo
	results   repository.ResultRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
	now       func() time.Time
}

func NewAssessmentService(
	templates repository.TemplateRepo,
	results repository.ResultRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AssessmentService {
	return &assessmentService{
		templates: templates,
		results:   results,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Submit scores the answers, classifies the total and stores the result
// under a fresh reference code.
func (s *assessmentService) Submit(ctx context.Context, templateRef, respondent string, answers []domain.Answer) (result *domain.AssessmentResult, err error) {
	fields := map[string]any{"template": templateRef, "answer_count": len(answers)}
	defer observe(ctx, s.observer, "submit-assessment", s.now(), fields, &err)

	code, err := newReferenceCode()
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		t, err := resolveTemplate(ctx, repository.NewSQLiteTemplateRepo(tx), templateRef)
		if err != nil {
			return err
		}
		if !t.AcceptsResponses() {
			return fmt.Errorf("%w: %s", ErrTemplateArchived, t.DisplayID())
		}

		total, err := scoring.Score(t.Questions, answers)
		if err != nil {
			return fmt.Errorf("scoring answers: %w", err)
		}

		res := &domain.AssessmentResult{
			ID:            uuid.New().String(),
			ReferenceCode: code,
			TemplateID:    t.ID,
			Respondent:    strings.TrimSpace(respondent),
			TotalScore:    total,
			MaxScore:      t.Scoring.MaxScore,
			Answers:       answers,
			CompletedAt:   s.now(),
		}
		if level, ok := scoring.Classify(total, t.Scoring.SeverityLevels); ok {
			res.SeverityName = level.Name
			res.SeverityColor = level.Color
			res.Recommendations = level.Recommendations
		}

		if err := repository.NewSQLiteResultRepo(tx).Create(ctx, res); err != nil {
			return fmt.Errorf("storing result: %w", err)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["total_score"] = result.TotalScore
	fields["severity"] = result.SeverityName
	return result, nil
}

func (s *assessmentService) GetResult(ctx context.Context, code string) (*domain.AssessmentResult, error) {
	return s.results.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *assessmentService) ListResults(ctx context.Context, templateRef string) ([]*domain.AssessmentResult, error) {
	t, err := resolveTemplate(ctx, s.templates, templateRef)
	if err != nil {
		return nil, err
	}
	return s.results.ListByTemplate(ctx, t.ID)
}

func newReferenceCode() (string, error) {
	id, err := gonanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return "", fmt.Errorf("generating reference code: %w", err)
	}
	return referencePrefix + id, nil
}
