package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mindwell/internal/domain"
)

const scoreBarWidth = 20

// FormatResult renders one scored submission with its recommendations.
func FormatResult(r *domain.AssessmentResult, t *domain.AssessmentTemplate) string {
	var b strings.Builder

	title := r.TemplateID
	if t != nil {
		title = t.DisplayID() + "  " + t.Title
	}
	fmt.Fprintf(&b, "%s  %s\n", Bold(r.ReferenceCode), Dim(title))
	if r.Respondent != "" {
		fmt.Fprintf(&b, "Respondent: %s\n", r.Respondent)
	}
	fmt.Fprintf(&b, "Completed:  %s\n\n", r.CompletedAt.Local().Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "Score:      %s  %s\n", RenderScoreBar(r.TotalScore, r.MaxScore, r.SeverityColor, scoreBarWidth), Dim(fmt.Sprintf("%.0f%%", r.Percent())))
	fmt.Fprintf(&b, "Severity:   %s\n", SeverityBadge(r.SeverityName, r.SeverityColor))

	if len(r.Recommendations) > 0 {
		b.WriteString("\n" + Header("Recommendations") + "\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  • %s\n", rec)
		}
	}

	if t != nil && len(r.Answers) > 0 {
		b.WriteString("\n" + Header("Answers") + "\n")
		for i, q := range t.Questions {
			ans, ok := answerFor(r.Answers, q.ID)
			if !ok {
				fmt.Fprintf(&b, "  %2d. %s\n", i+1, Dim("(skipped)"))
				continue
			}
			fmt.Fprintf(&b, "  %2d. %s\n", i+1, describeAnswer(&q, ans))
		}
	}
	return b.String()
}

// FormatResultList renders a template's results as a table.
func FormatResultList(results []*domain.AssessmentResult, now time.Time) string {
	if len(results) == 0 {
		return Dim("No results recorded.") + "\n"
	}
	headers := []string{"Code", "Respondent", "Score", "Severity", "Completed"}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		respondent := r.Respondent
		if respondent == "" {
			respondent = Dim("anonymous")
		}
		rows = append(rows, []string{
			Bold(r.ReferenceCode),
			respondent,
			fmt.Sprintf("%d/%d", r.TotalScore, r.MaxScore),
			SeverityBadge(r.SeverityName, r.SeverityColor),
			Dim(RelativeDateFrom(r.CompletedAt, now)),
		})
	}
	return RenderTableAligned(headers, rows, map[int]bool{2: true})
}

func answerFor(answers []domain.Answer, questionID string) (domain.AnswerValue, bool) {
	for _, a := range answers {
		if a.QuestionID == questionID {
			return a.Value, true
		}
	}
	return domain.AnswerValue{}, false
}

func describeAnswer(q *domain.Question, v domain.AnswerValue) string {
	if v.Kind == domain.AnswerText {
		return fmt.Sprintf("%q", v.Text)
	}
	parts := make([]string, 0, len(v.Numbers()))
	for _, n := range v.Numbers() {
		label := q.OptionLabel(n)
		if label == "" {
			parts = append(parts, strconv.Itoa(n))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s", label, Dim("("+strconv.Itoa(n)+")")))
	}
	return strings.Join(parts, ", ")
}
