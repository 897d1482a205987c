package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValue_UnmarshalVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AnswerValue
	}{
		{"number", `3`, NumberAnswer(3)},
		{"text", `"trouble sleeping"`, TextAnswer("trouble sleeping")},
		{"multi", `[1, 2]`, MultiAnswer(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnswerValue
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnswerValue_UnmarshalNullIsUnanswered(t *testing.T) {
	var got Answer
	require.NoError(t, json.Unmarshal([]byte(`{"question_id":"q1","value":null}`), &got))
	assert.Equal(t, "q1", got.QuestionID)
	assert.Equal(t, AnswerValue{}, got.Value)
	assert.True(t, got.Value.IsZero())

	got.Value = NumberAnswer(3)
	require.NoError(t, json.Unmarshal([]byte(`{"question_id":"q1","value":null}`), &got))
	assert.True(t, got.Value.IsZero(), "null clears a previous value")
}

func TestAnswerValue_UnmarshalRejectsObjects(t *testing.T) {
	var got AnswerValue
	err := json.Unmarshal([]byte(`{"a":1}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "answer must be")
}

func TestAnswerValue_MarshalKeepsShape(t *testing.T) {
	data, err := json.Marshal([]Answer{
		{QuestionID: "q1", Value: NumberAnswer(2)},
		{QuestionID: "q2", Value: MultiAnswer()},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question_id":"q1","value":2},{"question_id":"q2","value":[]}]`, string(data))
}

func TestAnswerValue_NumbersAndIsZero(t *testing.T) {
	assert.Equal(t, []int{4}, NumberAnswer(4).Numbers())
	assert.Equal(t, []int{1, 3}, MultiAnswer(1, 3).Numbers())
	assert.Nil(t, TextAnswer("x").Numbers())

	assert.False(t, NumberAnswer(0).IsZero())
	assert.True(t, TextAnswer("").IsZero())
	assert.True(t, MultiAnswer().IsZero())
	assert.True(t, AnswerValue{}.IsZero())
}
