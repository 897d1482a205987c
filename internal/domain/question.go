package domain

// QuestionOption is one selectable answer and the points it is worth.
type QuestionOption struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Question struct {
	ID         string
	TemplateID string
	Position   int
	Text       string
	Type       QuestionType
	Required   bool
	Options    []QuestionOption
}

// HasOption reports whether v is one of the question's option values.
func (q *Question) HasOption(v int) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// OptionLabel returns the label for value v, or "" if no option matches.
func (q *Question) OptionLabel(v int) string {
	for _, o := range q.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return ""
}
