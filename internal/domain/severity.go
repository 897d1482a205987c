package domain

import "fmt"

// ScoreRange is an inclusive integer interval of total scores.
type ScoreRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether score falls inside the inclusive range.
func (r ScoreRange) Contains(score int) bool {
	return score >= r.Min && score <= r.Max
}

// Width returns the number of integer scores covered by the range.
func (r ScoreRange) Width() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

func (r ScoreRange) String() string {
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// SeverityLevel is a named band of a template's total score.
type SeverityLevel struct {
	Name            string     `json:"name"`
	Range           ScoreRange `json:"range"`
	Color           string     `json:"color,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
}

// ScoringRuleSet pairs the highest achievable score with the severity bands
// that classify a total.
type ScoringRuleSet struct {
	MaxScore       int             `json:"max_score"`
	SeverityLevels []SeverityLevel `json:"severity_levels"`
}

// Clone returns a deep copy so callers can edit levels without aliasing.
func (s ScoringRuleSet) Clone() ScoringRuleSet {
	out := ScoringRuleSet{MaxScore: s.MaxScore}
	if s.SeverityLevels != nil {
		out.SeverityLevels = make([]SeverityLevel, len(s.SeverityLevels))
		for i, l := range s.SeverityLevels {
			out.SeverityLevels[i] = l
			if l.Recommendations != nil {
				out.SeverityLevels[i].Recommendations = append([]string(nil), l.Recommendations...)
			}
		}
	}
	return out
}
