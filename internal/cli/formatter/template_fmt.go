package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/scoring"
)

const coverageWidth = 40

// FormatTemplateList renders templates as a table sorted as given.
func FormatTemplateList(templates []*domain.AssessmentTemplate, now time.Time) string {
	if len(templates) == 0 {
		return Dim("No templates found.") + "\n"
	}
	headers := []string{"ID", "Title", "Status", "Questions", "Max", "Levels", "Updated"}
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{
			Bold(t.DisplayID()),
			Truncate(t.Title, 40),
			StatusIndicator(t.Status),
			strconv.Itoa(len(t.Questions)),
			strconv.Itoa(t.Scoring.MaxScore),
			strconv.Itoa(len(t.Scoring.SeverityLevels)),
			Dim(RelativeDateFrom(t.UpdatedAt, now)),
		})
	}
	return RenderTableAligned(headers, rows, map[int]bool{3: true, 4: true, 5: true})
}

// FormatTemplateDetail renders a template with its questions, severity
// levels, coverage bar and the current verdict on its scoring rules.
func FormatTemplateDetail(t *domain.AssessmentTemplate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(t.DisplayID()), t.Title, StatusIndicator(t.Status))
	if t.Description != "" {
		fmt.Fprintf(&b, "%s\n", Dim(t.Description))
	}
	if t.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", t.Category)
	}
	b.WriteString("\n")

	b.WriteString(Header("Questions") + "\n")
	if len(t.Questions) == 0 {
		b.WriteString(Dim("  none") + "\n")
	}
	for i, q := range t.Questions {
		req := ""
		if !q.Required {
			req = Dim(" (optional)")
		}
		fmt.Fprintf(&b, "  %2d. %s %s%s\n", i+1, q.Text, Dim("["+string(q.Type)+"]"), req)
		if len(q.Options) > 0 {
			opts := make([]string, 0, len(q.Options))
			for _, o := range q.Options {
				opts = append(opts, fmt.Sprintf("%d=%s", o.Value, o.Label))
			}
			fmt.Fprintf(&b, "      %s\n", Dim(strings.Join(opts, "  ")))
		}
	}
	b.WriteString("\n")

	b.WriteString(FormatScoring(t.Scoring))
	return b.String()
}

// FormatScoring renders the severity level table, the coverage bar and the
// validation verdict for a rule set.
func FormatScoring(rs domain.ScoringRuleSet) string {
	var b strings.Builder
	b.WriteString(Header("Severity levels") + "\n")

	if len(rs.SeverityLevels) > 0 {
		rows := make([][]string, 0, len(rs.SeverityLevels))
		for _, l := range scoring.Normalize(rs.SeverityLevels) {
			rows = append(rows, []string{
				SeverityBadge(l.Name, l.Color),
				strconv.Itoa(l.Range.Min),
				strconv.Itoa(l.Range.Max),
				Dim(l.Color),
				strings.Join(l.Recommendations, "; "),
			})
		}
		b.WriteString(RenderTableAligned(
			[]string{"Level", "Min", "Max", "Color", "Recommendations"},
			rows, map[int]bool{1: true, 2: true}))
	}
	fmt.Fprintf(&b, "%s\n", RenderCoverage(rs.MaxScore, rs.SeverityLevels, coverageWidth))
	b.WriteString(FormatVerdict(scoring.ValidateRuleSet(rs)) + "\n")
	return b.String()
}

// FormatVerdict renders a validation result as a single OK or failure line.
func FormatVerdict(res scoring.Result) string {
	if res.Valid {
		return OK("levels cover every score")
	}
	return Fail(fmt.Sprintf("%s %s", StyleRed.Render(string(res.Reason)), res.Message))
}
