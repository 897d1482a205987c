package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/mindwell/internal/db"
	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/importer"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/scoring"
)

type templateService struct {
	templates repository.TemplateRepo
	uow       db.UnitOfWork
	observer  UseCaseObserver
}

func NewTemplateService(
	templates repository.TemplateRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TemplateService {
	return &templateService{
		templates: templates,
		uow:       uow,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *templateService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	t, err := importer.LoadTemplateFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportFromSchema(ctx, t)
}

func (s *templateService) ImportFromSchema(ctx context.Context, t *importer.TemplateImport) (result *ImportResult, err error) {
	fields := map[string]any{"short_id": t.ShortID}
	defer observe(ctx, s.observer, "import-template", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateTemplateImport(t); len(errs) > 0 {
		fields["error_count"] = len(errs)
		return nil, &ImportValidationError{Errs: errs}
	}

	tmpl, err := importer.Convert(t)
	if err != nil {
		return nil, fmt.Errorf("converting import: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTemplateRepo(tx).Create(ctx, tmpl); err != nil {
			return fmt.Errorf("creating template: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["question_count"] = len(tmpl.Questions)
	fields["level_count"] = len(tmpl.Scoring.SeverityLevels)
	return &ImportResult{
		Template:      tmpl,
		QuestionCount: len(tmpl.Questions),
		LevelCount:    len(tmpl.Scoring.SeverityLevels),
	}, nil
}

func (s *templateService) List(ctx context.Context, includeArchived bool) ([]*domain.AssessmentTemplate, error) {
	return s.templates.List(ctx, includeArchived)
}

func (s *templateService) Get(ctx context.Context, ref string) (*domain.AssessmentTemplate, error) {
	return resolveTemplate(ctx, s.templates, ref)
}

// UpdateScoring replaces the template's severity levels after validating
// them. A MaxScore of 0 keeps the stored maximum.
func (s *templateService) UpdateScoring(ctx context.Context, ref string, rs domain.ScoringRuleSet) (updated *domain.AssessmentTemplate, err error) {
	fields := map[string]any{"template": ref, "level_count": len(rs.SeverityLevels)}
	defer observe(ctx, s.observer, "update-scoring", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		t, err := resolveTemplate(ctx, repo, ref)
		if err != nil {
			return err
		}

		next := rs.Clone()
		if next.MaxScore <= 0 {
			next.MaxScore = t.Scoring.MaxScore
		}
		if achievable := scoring.MaxScore(t.Questions); next.MaxScore < achievable {
			return fmt.Errorf("%w: max score %d is below the highest achievable score %d",
				scoring.ErrInvalidArgument, next.MaxScore, achievable)
		}
		for _, l := range next.SeverityLevels {
			if l.Color != "" && !scoring.ValidHexColor(l.Color) {
				return fmt.Errorf("severity level %q: %w: %q", l.Name, scoring.ErrInvalidColor, l.Color)
			}
		}
		if res := scoring.ValidateRuleSet(next); !res.Valid {
			fields["reason"] = string(res.Reason)
			return res.Err()
		}

		if err := repo.ReplaceScoring(ctx, t.ID, next); err != nil {
			return fmt.Errorf("replacing scoring: %w", err)
		}
		t.Scoring = next
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *templateService) Publish(ctx context.Context, ref string) (err error) {
	fields := map[string]any{"template": ref}
	defer observe(ctx, s.observer, "publish-template", time.Now().UTC(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		t, err := resolveTemplate(ctx, repo, ref)
		if err != nil {
			return err
		}
		if len(t.Questions) == 0 {
			return fmt.Errorf("%w: %s has no questions", ErrNotPublishable, t.DisplayID())
		}
		if res := scoring.ValidateRuleSet(t.Scoring); !res.Valid {
			return fmt.Errorf("%w: %w", ErrNotPublishable, res.Err())
		}
		return repo.UpdateStatus(ctx, t.ID, domain.TemplatePublished)
	})
}

func (s *templateService) Archive(ctx context.Context, ref string) (err error) {
	fields := map[string]any{"template": ref}
	defer observe(ctx, s.observer, "archive-template", time.Now().UTC(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		t, err := resolveTemplate(ctx, repo, ref)
		if err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, t.ID, domain.TemplateArchived)
	})
}

func (s *templateService) Delete(ctx context.Context, ref string) (err error) {
	fields := map[string]any{"template": ref}
	defer observe(ctx, s.observer, "delete-template", time.Now().UTC(), fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteTemplateRepo(tx)
		t, err := resolveTemplate(ctx, repo, ref)
		if err != nil {
			return err
		}
		return repo.Delete(ctx, t.ID)
	})
}
