package domain

import (
	"encoding/json"
	"fmt"
)

// AnswerValue holds exactly one of a number, free text, or a set of numbers,
// selected by Kind.
type AnswerValue struct {
	Kind   AnswerKind
	Number int
	Text   string
	Values []int
}

func NumberAnswer(v int) AnswerValue { return AnswerValue{Kind: AnswerNumber, Number: v} }

func TextAnswer(s string) AnswerValue { return AnswerValue{Kind: AnswerText, Text: s} }

func MultiAnswer(vs ...int) AnswerValue {
	return AnswerValue{Kind: AnswerMultiValue, Values: append([]int(nil), vs...)}
}

// Numbers returns the scored values carried by the answer.
func (a AnswerValue) Numbers() []int {
	switch a.Kind {
	case AnswerNumber:
		return []int{a.Number}
	case AnswerMultiValue:
		return a.Values
	default:
		return nil
	}
}

// IsZero reports whether the answer carries no value at all.
func (a AnswerValue) IsZero() bool {
	switch a.Kind {
	case AnswerNumber:
		return false
	case AnswerText:
		return a.Text == ""
	case AnswerMultiValue:
		return len(a.Values) == 0
	default:
		return true
	}
}

// MarshalJSON encodes the answer as a bare number, string, or array.
func (a AnswerValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case AnswerNumber:
		return json.Marshal(a.Number)
	case AnswerText:
		return json.Marshal(a.Text)
	case AnswerMultiValue:
		if a.Values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Values)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a number, a string, or an array of numbers. A JSON
// null leaves the zero AnswerValue, which counts as unanswered.
func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = AnswerValue{}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*a = NumberAnswer(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = TextAnswer(s)
		return nil
	}
	var vs []int
	if err := json.Unmarshal(data, &vs); err == nil {
		*a = MultiAnswer(vs...)
		return nil
	}
	return fmt.Errorf("answer must be an integer, a string, or an array of integers: %s", string(data))
}

// Answer binds a value to the question it answers.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Value      AnswerValue `json:"value"`
}
