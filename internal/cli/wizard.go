package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// skippedOption marks an optional choice question left unanswered.
const skippedOption = -1

// mindwellHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func mindwellHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// assessmentAnswers holds form-bound values, one slot per question.
type assessmentAnswers struct {
	respondent string
	choices    []int
	multi      [][]int
	texts      []string
}

func newAssessmentAnswers(t *domain.AssessmentTemplate) *assessmentAnswers {
	n := len(t.Questions)
	a := &assessmentAnswers{
		choices: make([]int, n),
		multi:   make([][]int, n),
		texts:   make([]string, n),
	}
	for i, q := range t.Questions {
		if !q.Required {
			a.choices[i] = skippedOption
		} else if len(q.Options) > 0 {
			a.choices[i] = q.Options[0].Value
		}
	}
	return a
}

// toAnswers converts the bound values into answers, leaving out skipped
// optional questions.
func (a *assessmentAnswers) toAnswers(t *domain.AssessmentTemplate) []domain.Answer {
	var out []domain.Answer
	for i, q := range t.Questions {
		var v domain.AnswerValue
		switch q.Type {
		case domain.QuestionText:
			if strings.TrimSpace(a.texts[i]) == "" {
				continue
			}
			v = domain.TextAnswer(strings.TrimSpace(a.texts[i]))
		case domain.QuestionMultiChoice:
			if len(a.multi[i]) == 0 {
				continue
			}
			v = domain.MultiAnswer(a.multi[i]...)
		default:
			if a.choices[i] == skippedOption {
				continue
			}
			v = domain.NumberAnswer(a.choices[i])
		}
		out = append(out, domain.Answer{QuestionID: q.ID, Value: v})
	}
	return out
}

// wizardAssessment builds one form page per question, plus a respondent
// page when askRespondent is set.
func wizardAssessment(t *domain.AssessmentTemplate, a *assessmentAnswers, askRespondent bool) *huh.Form {
	var groups []*huh.Group
	if askRespondent {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Respondent (optional)").
				Placeholder("name or initials").
				Value(&a.respondent),
		).Title(t.Title).Description(t.Description))
	}

	for i, q := range t.Questions {
		title := fmt.Sprintf("%d/%d  %s", i+1, len(t.Questions), q.Text)

		var field huh.Field
		switch q.Type {
		case domain.QuestionText:
			input := huh.NewInput().Title(title).Value(&a.texts[i])
			if q.Required {
				input = input.Validate(requiredText)
			}
			field = input

		case domain.QuestionMultiChoice:
			opts := make([]huh.Option[int], 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o.Label, o.Value))
			}
			ms := huh.NewMultiSelect[int]().Title(title).Options(opts...).Value(&a.multi[i])
			if q.Required {
				ms = ms.Validate(func(vs []int) error {
					if len(vs) == 0 {
						return fmt.Errorf("choose at least one")
					}
					return nil
				})
			}
			field = ms

		default:
			opts := make([]huh.Option[int], 0, len(q.Options)+1)
			for _, o := range q.Options {
				opts = append(opts, huh.NewOption(o.Label, o.Value))
			}
			if !q.Required {
				opts = append(opts, huh.NewOption("Skip", skippedOption))
			}
			field = huh.NewSelect[int]().Title(title).Options(opts...).Value(&a.choices[i])
		}
		groups = append(groups, huh.NewGroup(field))
	}

	return huh.NewForm(groups...).WithTheme(mindwellHuhTheme()).WithShowHelp(false)
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("an answer is required")
	}
	return nil
}
