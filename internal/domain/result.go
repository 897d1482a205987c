package domain

import "time"

type AssessmentResult struct {
	ID              string
	ReferenceCode   string
	TemplateID      string
	Respondent      string
	TotalScore      int
	MaxScore        int
	SeverityName    string
	SeverityColor   string
	Recommendations []string
	Answers         []Answer
	CompletedAt     time.Time
}

// Percent returns the total as a percentage of the maximum score.
func (r *AssessmentResult) Percent() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.MaxScore) * 100
}
