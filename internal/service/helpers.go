package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/repository"
)

// ImportValidationError lists every problem found in an import file.
type ImportValidationError struct {
	Errs []error
}

func (e *ImportValidationError) Error() string {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(e.Errs))
	for _, err := range e.Errs {
		msg += "\n  - " + err.Error()
	}
	return msg
}

func (e *ImportValidationError) Unwrap() []error {
	return e.Errs
}

// resolveTemplate accepts a short ID (case-insensitive) or a full ID.
func resolveTemplate(ctx context.Context, repo repository.TemplateRepo, ref string) (*domain.AssessmentTemplate, error) {
	input := strings.TrimSpace(ref)
	if input == "" {
		return nil, fmt.Errorf("template %q: %w", ref, repository.ErrNotFound)
	}

	t, err := repo.GetByShortID(ctx, input)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	t, err = repo.GetByID(ctx, input)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("template %q: %w", ref, repository.ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}
