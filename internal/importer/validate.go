package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/scoring"
)

// ValidateTemplateImport checks the template for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateTemplateImport(t *TemplateImport) []error {
	var errs []error

	errs = append(errs, validateHeader(t)...)
	errs = append(errs, validateQuestions(t.Questions)...)
	errs = append(errs, validateScoring(&t.Scoring, t.Questions)...)

	return errs
}

// ValidateFile loads and validates a template file in one step. A load
// failure is returned as the only error.
func ValidateFile(path string) (*TemplateImport, []error) {
	t, err := LoadTemplateFile(path)
	if err != nil {
		return nil, []error{err}
	}
	return t, ValidateTemplateImport(t)
}

func validateHeader(t *TemplateImport) []error {
	var errs []error

	if t.ShortID == "" {
		errs = append(errs, fmt.Errorf("short_id is required"))
	} else {
		candidate := domain.AssessmentTemplate{ShortID: t.ShortID}
		if err := candidate.ValidateShortID(); err != nil {
			errs = append(errs, fmt.Errorf("short_id: %w", err))
		}
	}
	if strings.TrimSpace(t.Title) == "" {
		errs = append(errs, fmt.Errorf("title is required"))
	}
	if t.Status != "" && !domain.ValidTemplateStatuses[t.Status] {
		errs = append(errs, fmt.Errorf("status: invalid value %q", t.Status))
	}

	return errs
}

func validateQuestions(questions []QuestionImport) []error {
	var errs []error

	if len(questions) == 0 {
		errs = append(errs, fmt.Errorf("questions: at least one question is required"))
	}

	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Errorf("%s.text is required", prefix))
		}
		if q.Type == "" {
			errs = append(errs, fmt.Errorf("%s.type is required", prefix))
			continue
		}
		if !domain.ValidQuestionTypes[q.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, q.Type))
			continue
		}

		if domain.QuestionType(q.Type) == domain.QuestionText {
			if len(q.Options) > 0 {
				errs = append(errs, fmt.Errorf("%s.options: text questions cannot have options", prefix))
			}
			continue
		}
		if len(q.Options) == 0 {
			errs = append(errs, fmt.Errorf("%s.options: %s questions need at least one option", prefix, q.Type))
		}

		seen := make(map[Score]int)
		for j, o := range q.Options {
			optPrefix := fmt.Sprintf("%s.options[%d]", prefix, j)
			if strings.TrimSpace(o.Label) == "" {
				errs = append(errs, fmt.Errorf("%s.label is required", optPrefix))
			}
			if o.Value < 0 {
				errs = append(errs, fmt.Errorf("%s.value must be 0 or greater (got %d)", optPrefix, o.Value))
			}
			if first, dup := seen[o.Value]; dup {
				errs = append(errs, fmt.Errorf("%s.value: duplicate value %d (also options[%d])", optPrefix, o.Value, first))
			} else {
				seen[o.Value] = j
			}
		}
	}

	return errs
}

func validateScoring(s *ScoringImport, questions []QuestionImport) []error {
	var errs []error

	achievable := scoring.MaxScore(convertQuestions("", questions))
	maxScore := achievable
	if s.MaxScore != nil {
		maxScore = int(*s.MaxScore)
		switch {
		case maxScore < 0:
			errs = append(errs, fmt.Errorf("scoring.max_score must be 0 or greater (got %d)", maxScore))
		case maxScore < achievable:
			errs = append(errs, fmt.Errorf("scoring.max_score (%d) is below the highest achievable score (%d)", maxScore, achievable))
		}
	}

	names := make(map[string]int)
	for i, l := range s.SeverityLevels {
		prefix := fmt.Sprintf("scoring.severity_levels[%d]", i)
		name := strings.TrimSpace(l.Name)
		if name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if first, dup := names[strings.ToLower(name)]; dup {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q (also severity_levels[%d])", prefix, l.Name, first))
		} else {
			names[strings.ToLower(name)] = i
		}
		if l.Color != "" && !scoring.ValidHexColor(l.Color) {
			errs = append(errs, fmt.Errorf("%s.color: %q is not a #RGB or #RRGGBB hex color", prefix, l.Color))
		}
	}

	if res := scoring.Validate(maxScore, convertLevels(s.SeverityLevels)); !res.Valid {
		errs = append(errs, fmt.Errorf("scoring.severity_levels: %s", res.Message))
	}

	return errs
}
