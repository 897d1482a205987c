package service

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/alexanderramin/mindwell/internal/repository"
	"github.com/alexanderramin/mindwell/internal/scoring"
	"github.com/alexanderramin/mindwell/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^R-[0-9A-HJ-NP-Z]{10}$`)

func answersFor(tmpl *domain.AssessmentTemplate, values ...int) []domain.Answer {
	out := make([]domain.Answer, len(values))
	for i, v := range values {
		out[i] = domain.Answer{QuestionID: tmpl.Questions[i].ID, Value: domain.NumberAnswer(v)}
	}
	return out
}

func TestAssessmentService_SubmitClassifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tmpl := f.seed(t)

	tests := []struct {
		name     string
		values   []int
		total    int
		severity string
		color    string
	}{
		{"floor", []int{0, 0}, 0, "Minimal", "#8ec07c"},
		{"band edge", []int{1, 1}, 2, "Minimal", "#8ec07c"},
		{"middle", []int{3, 0}, 3, "Moderate", "#fabd2f"},
		{"ceiling", []int{3, 3}, 6, "Severe", "#fb4934"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.assessSvc.Submit(ctx, tmpl.ShortID, "  anon  ", answersFor(tmpl, tt.values...))
			require.NoError(t, err)
			assert.Regexp(t, referencePattern, res.ReferenceCode)
			assert.Equal(t, tt.total, res.TotalScore)
			assert.Equal(t, 6, res.MaxScore)
			assert.Equal(t, tt.severity, res.SeverityName)
			assert.Equal(t, tt.color, res.SeverityColor)
			assert.Equal(t, "anon", res.Respondent)
		})
	}

	all, err := f.assessSvc.ListResults(ctx, tmpl.ShortID)
	require.NoError(t, err)
	assert.Len(t, all, len(tests))
}

func TestAssessmentService_SubmitCarriesRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tmpl := f.seed(t)

	res, err := f.assessSvc.Submit(ctx, tmpl.ID, "", answersFor(tmpl, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, []string{"Contact a counselor"}, res.Recommendations)

	got, err := f.assessSvc.GetResult(ctx, res.ReferenceCode)
	require.NoError(t, err)
	assert.Equal(t, res.TotalScore, got.TotalScore)
	assert.Equal(t, res.Recommendations, got.Recommendations)
	assert.Equal(t, res.Answers, got.Answers)
	assert.WithinDuration(t, res.CompletedAt, got.CompletedAt, time.Microsecond)

	ev := f.observer.last()
	assert.Equal(t, "submit-assessment", ev.Name)
	assert.Equal(t, 5, ev.Fields["total_score"])
	assert.Equal(t, "Severe", ev.Fields["severity"])
}

func TestAssessmentService_SubmitErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tmpl := f.seed(t)
	archived := f.seed(t, testutil.WithStatus(domain.TemplateArchived))

	tests := []struct {
		name    string
		ref     string
		answers []domain.Answer
		wantErr error
	}{
		{"unknown template", "NOPE01", nil, repository.ErrNotFound},
		{"archived template", archived.ShortID, answersFor(archived, 0, 0), ErrTemplateArchived},
		{"missing required", tmpl.ShortID, answersFor(tmpl, 1), scoring.ErrUnansweredQuestion},
		{"unknown option", tmpl.ShortID, answersFor(tmpl, 1, 9), scoring.ErrUnknownOption},
		{"unknown question", tmpl.ShortID, []domain.Answer{{QuestionID: "ghost", Value: domain.NumberAnswer(1)}}, scoring.ErrUnknownQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.assessSvc.Submit(ctx, tt.ref, "", tt.answers)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, err := f.results.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, stored, "failed submissions must not store results")
}

func TestAssessmentService_GetResultNormalisesCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tmpl := f.seed(t)

	res, err := f.assessSvc.Submit(ctx, tmpl.ShortID, "", answersFor(tmpl, 0, 1))
	require.NoError(t, err)

	lower := " r-" + res.ReferenceCode[2:] + " "
	got, err := f.assessSvc.GetResult(ctx, lower)
	require.NoError(t, err)
	assert.Equal(t, res.ID, got.ID)

	_, err = f.assessSvc.GetResult(ctx, "R-MISSING")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogUseCaseObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := NewLogUseCaseObserver(logger)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "publish-template",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"template": "PHQ09"},
	})

	out := buf.String()
	assert.Contains(t, out, "use_case=publish-template")
	assert.Contains(t, out, "duration_ms=12")
	assert.Contains(t, out, "template=PHQ09")

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
