package domain

type TemplateStatus string

const (
	TemplateDraft     TemplateStatus = "draft"
	TemplatePublished TemplateStatus = "published"
	TemplateArchived  TemplateStatus = "archived"
)

// ValidTemplateStatuses is the canonical set of accepted status strings.
var ValidTemplateStatuses = map[string]bool{
	"draft": true, "published": true, "archived": true,
}

type QuestionType string

const (
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionMultiChoice  QuestionType = "multi_choice"
	QuestionScale        QuestionType = "scale"
	QuestionText         QuestionType = "text"
)

// ValidQuestionTypes is the canonical set of accepted question type strings.
var ValidQuestionTypes = map[string]bool{
	"single_choice": true, "multi_choice": true, "scale": true, "text": true,
}

// Scored reports whether answers to this question type contribute to the total.
func (t QuestionType) Scored() bool {
	return t != QuestionText
}

type AnswerKind string

const (
	AnswerNumber     AnswerKind = "number"
	AnswerText       AnswerKind = "text"
	AnswerMultiValue AnswerKind = "multi"
)
