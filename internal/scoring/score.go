package scoring

import (
	"fmt"

	"github.com/alexanderramin/mindwell/internal/domain"
)

// MaxScore returns the highest total a respondent can reach. Choice and
// scale questions contribute their best option; multi-choice questions
// contribute every positive option; text questions contribute nothing.
func MaxScore(questions []domain.Question) int {
	total := 0
	for _, q := range questions {
		switch q.Type {
		case domain.QuestionMultiChoice:
			for _, o := range q.Options {
				if o.Value > 0 {
					total += o.Value
				}
			}
		case domain.QuestionSingleChoice, domain.QuestionScale:
			best := 0
			for _, o := range q.Options {
				if o.Value > best {
					best = o.Value
				}
			}
			total += best
		}
	}
	return total
}

// Score totals a set of answers against the template's questions.
func Score(questions []domain.Question, answers []domain.Answer) (int, error) {
	byQuestion := make(map[string]domain.AnswerValue, len(answers))
	known := make(map[string]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}
	for _, a := range answers {
		if !known[a.QuestionID] {
			return 0, fmt.Errorf("%w: %q", ErrUnknownQuestion, a.QuestionID)
		}
		byQuestion[a.QuestionID] = a.Value
	}

	total := 0
	for i := range questions {
		q := &questions[i]
		ans, ok := byQuestion[q.ID]
		if !ok || ans.IsZero() {
			if q.Required {
				return 0, fmt.Errorf("%w: question %d (%q)", ErrUnansweredQuestion, q.Position+1, q.Text)
			}
			continue
		}
		if !q.Type.Scored() {
			if ans.Kind != domain.AnswerText {
				return 0, fmt.Errorf("%w: question %d expects text", ErrAnswerKind, q.Position+1)
			}
			continue
		}

		switch q.Type {
		case domain.QuestionMultiChoice:
			if ans.Kind == domain.AnswerText {
				return 0, fmt.Errorf("%w: question %d expects option values", ErrAnswerKind, q.Position+1)
			}
			seen := make(map[int]bool)
			for _, v := range ans.Numbers() {
				if seen[v] {
					continue
				}
				seen[v] = true
				if !q.HasOption(v) {
					return 0, fmt.Errorf("%w: question %d has no option worth %d", ErrUnknownOption, q.Position+1, v)
				}
				total += v
			}
		default:
			if ans.Kind != domain.AnswerNumber {
				return 0, fmt.Errorf("%w: question %d expects a single option value", ErrAnswerKind, q.Position+1)
			}
			if !q.HasOption(ans.Number) {
				return 0, fmt.Errorf("%w: question %d has no option worth %d", ErrUnknownOption, q.Position+1, ans.Number)
			}
			total += ans.Number
		}
	}
	return total, nil
}
