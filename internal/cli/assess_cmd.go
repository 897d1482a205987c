package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/mindwell/internal/cli/formatter"
	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// answerFlag collects repeated --answer Q=V flags keyed by 1-based
// question number.
type answerFlag map[int]string

var _ pflag.Value = answerFlag(nil)

func (f answerFlag) String() string {
	keys := make([]int, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%d=%s", k, f[k]))
	}
	return strings.Join(parts, ",")
}

func (f answerFlag) Set(s string) error {
	q, v, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("answer %q must look like QUESTION=VALUE", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(q))
	if err != nil || n < 1 {
		return fmt.Errorf("answer %q: question must be a number starting at 1", s)
	}
	f[n] = strings.TrimSpace(v)
	return nil
}

func (f answerFlag) Type() string { return "Q=V" }

// answersFromFlags maps --answer values onto the template's questions.
// Choice values are option scores; multi-choice values are comma separated.
func answersFromFlags(t *domain.AssessmentTemplate, flags answerFlag) ([]domain.Answer, error) {
	keys := make([]int, 0, len(flags))
	for k := range flags {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	answers := make([]domain.Answer, 0, len(keys))
	for _, n := range keys {
		if n > len(t.Questions) {
			return nil, fmt.Errorf("answer for question %d: template has %d questions", n, len(t.Questions))
		}
		q := t.Questions[n-1]
		raw := flags[n]

		var v domain.AnswerValue
		switch q.Type {
		case domain.QuestionText:
			v = domain.TextAnswer(raw)
		case domain.QuestionMultiChoice:
			var vs []int
			for _, part := range strings.Split(raw, ",") {
				x, err := strconv.Atoi(strings.TrimSpace(part))
				if err != nil {
					return nil, fmt.Errorf("answer for question %d: %q is not a list of numbers", n, raw)
				}
				vs = append(vs, x)
			}
			v = domain.MultiAnswer(vs...)
		default:
			x, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("answer for question %d: %q is not a number", n, raw)
			}
			v = domain.NumberAnswer(x)
		}
		answers = append(answers, domain.Answer{QuestionID: q.ID, Value: v})
	}
	return answers, nil
}

func newAssessCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Administer assessments and review results",
	}

	cmd.AddCommand(
		newAssessTakeCmd(app),
		newAssessResultsCmd(app),
		newAssessShowCmd(app),
	)

	return cmd
}

func newAssessTakeCmd(app *App) *cobra.Command {
	var respondent string
	answers := answerFlag{}

	cmd := &cobra.Command{
		Use:   "take REF",
		Short: "Answer a template's questions and record the scored result",
		Example: "  mindwell assess take PHQ09\n" +
			"  mindwell assess take GAD07 --respondent sam --answer 1=2 --answer 2=0 ...",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Templates.Get(ctx, args[0])
			if err != nil {
				return err
			}

			var given []domain.Answer
			if len(answers) == 0 && app.interactive() {
				bound := newAssessmentAnswers(t)
				form := wizardAssessment(t, bound, !cmd.Flags().Changed("respondent"))
				if err := form.RunWithContext(ctx); err != nil {
					return err
				}
				given = bound.toAnswers(t)
				if bound.respondent != "" {
					respondent = bound.respondent
				}
			} else {
				if given, err = answersFromFlags(t, answers); err != nil {
					return err
				}
			}

			res, err := app.Assessments.Submit(ctx, t.ID, respondent, given)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(res, t))
			return nil
		},
	}

	cmd.Flags().StringVar(&respondent, "respondent", "", "Name or initials of the person answering")
	cmd.Flags().Var(answers, "answer", "Answer as QUESTION=VALUE, repeatable (e.g. --answer 1=2)")
	return cmd
}

func newAssessResultsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "results REF",
		Short: "List recorded results for a template, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := app.Assessments.ListResults(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResultList(results, app.now()))
			return nil
		},
	}
}

func newAssessShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CODE",
		Short: "Show one result by its reference code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := app.Assessments.GetResult(ctx, args[0])
			if err != nil {
				return err
			}
			t, err := app.Templates.Get(ctx, res.TemplateID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(res, t))
			return nil
		},
	}
}
