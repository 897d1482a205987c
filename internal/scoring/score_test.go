package scoring

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/mindwell/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func likert(id string, pos int) domain.Question {
	return domain.Question{
		ID: id, Position: pos, Text: "Item " + id, Type: domain.QuestionScale, Required: true,
		Options: []domain.QuestionOption{
			{Label: "Not at all", Value: 0},
			{Label: "Several days", Value: 1},
			{Label: "More than half the days", Value: 2},
			{Label: "Nearly every day", Value: 3},
		},
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		likert("q1", 0),
		likert("q2", 1),
		{
			ID: "q3", Position: 2, Text: "Which apply?", Type: domain.QuestionMultiChoice,
			Options: []domain.QuestionOption{{Label: "Panic", Value: 2}, {Label: "Worry", Value: 1}, {Label: "None", Value: 0}},
		},
		{ID: "q4", Position: 3, Text: "Anything else?", Type: domain.QuestionText},
	}
}

func TestMaxScore(t *testing.T) {
	assert.Equal(t, 3+3+3, MaxScore(sampleQuestions()))
	assert.Equal(t, 0, MaxScore(nil))
}

func TestScore_SumsAllKinds(t *testing.T) {
	total, err := Score(sampleQuestions(), []domain.Answer{
		{QuestionID: "q1", Value: domain.NumberAnswer(2)},
		{QuestionID: "q2", Value: domain.NumberAnswer(3)},
		{QuestionID: "q3", Value: domain.MultiAnswer(2, 1, 2)},
		{QuestionID: "q4", Value: domain.TextAnswer("sleep is bad")},
	})
	require.NoError(t, err)
	assert.Equal(t, 8, total)
}

func TestScore_OptionalQuestionsMayBeSkipped(t *testing.T) {
	total, err := Score(sampleQuestions(), []domain.Answer{
		{QuestionID: "q1", Value: domain.NumberAnswer(1)},
		{QuestionID: "q2", Value: domain.NumberAnswer(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestScore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		answers []domain.Answer
		want    error
	}{
		{"missing required", []domain.Answer{{QuestionID: "q1", Value: domain.NumberAnswer(1)}}, ErrUnansweredQuestion},
		{"unknown question", []domain.Answer{{QuestionID: "zz", Value: domain.NumberAnswer(1)}}, ErrUnknownQuestion},
		{"unknown option", []domain.Answer{
			{QuestionID: "q1", Value: domain.NumberAnswer(7)},
			{QuestionID: "q2", Value: domain.NumberAnswer(0)},
		}, ErrUnknownOption},
		{"text for scale", []domain.Answer{
			{QuestionID: "q1", Value: domain.TextAnswer("often")},
			{QuestionID: "q2", Value: domain.NumberAnswer(0)},
		}, ErrAnswerKind},
		{"number for text", []domain.Answer{
			{QuestionID: "q1", Value: domain.NumberAnswer(0)},
			{QuestionID: "q2", Value: domain.NumberAnswer(0)},
			{QuestionID: "q4", Value: domain.NumberAnswer(1)},
		}, ErrAnswerKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(sampleQuestions(), tt.answers)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestScore_NullAnswerIsUnanswered(t *testing.T) {
	var answers []domain.Answer
	require.NoError(t, json.Unmarshal([]byte(`[
		{"question_id": "q1", "value": 1},
		{"question_id": "q2", "value": null}
	]`), &answers))

	_, err := Score(sampleQuestions(), answers)
	assert.ErrorIs(t, err, ErrUnansweredQuestion)
	assert.ErrorContains(t, err, "question 2")
}
