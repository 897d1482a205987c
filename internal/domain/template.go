package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type AssessmentTemplate struct {
	ID          string
	ShortID     string
	Title       string
	Description string
	Category    string
	Status      TemplateStatus
	Questions   []Question
	Scoring     ScoringRuleSet
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. PHQ09, GAD07).
func (t *AssessmentTemplate) ValidateShortID() error {
	if t.ShortID == "" {
		return fmt.Errorf("short ID is required")
	}
	if !shortIDPattern.MatchString(t.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. PHQ09)", t.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (t *AssessmentTemplate) DisplayID() string {
	if t.ShortID != "" {
		return t.ShortID
	}
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}

// QuestionByID returns the question with the given ID, or nil.
func (t *AssessmentTemplate) QuestionByID(id string) *Question {
	for i := range t.Questions {
		if t.Questions[i].ID == id {
			return &t.Questions[i]
		}
	}
	return nil
}

// AcceptsResponses reports whether new results may be recorded.
func (t *AssessmentTemplate) AcceptsResponses() bool {
	return t.Status != TemplateArchived
}
