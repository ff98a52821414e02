package model

import (
	"github.com/google/uuid"
)

// AnswerType describes how a questionnaire question is answered.
type AnswerType string

const (
	AnswerTypeText     AnswerType = "TEXT"
	AnswerTypeCheckbox AnswerType = "CHECKBOX"
	AnswerTypeDropdown AnswerType = "DROPDOWN"
)

func (t AnswerType) Valid() bool {
	switch t {
	case AnswerTypeText, AnswerTypeCheckbox, AnswerTypeDropdown:
		return true
	}
	return false
}

// HasOptions reports whether questions of this type carry a choice list.
func (t AnswerType) HasOptions() bool {
	return t == AnswerTypeCheckbox || t == AnswerTypeDropdown
}

// Service is a consultation package with its intake questionnaire.
type Service struct {
	Base
	Name          string     `db:"name" json:"name"`
	Description   string     `db:"description" json:"description"`
	Image         string     `db:"image" json:"image"`
	Amount        string     `db:"amount" json:"amount"`
	AmountMonthly string     `db:"amount_monthly" json:"amountMonthly"`
	Position      int        `db:"position" json:"-"`
	Questions     []Question `db:"-" json:"questions"`
}

// Question is one item in a service's intake questionnaire. Choice
// questions (CHECKBOX, DROPDOWN) carry a non-empty option list; TEXT
// questions ignore options.
type Question struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	ServiceID  uuid.UUID  `db:"service_id" json:"-"`
	Text       string     `db:"question" json:"question"`
	AnswerType AnswerType `db:"answer_type" json:"answerType"`
	Position   int        `db:"position" json:"-"`
	Options    []Option   `db:"-" json:"option,omitempty"`
}

// Option is a selectable choice belonging to exactly one question.
type Option struct {
	ID         uuid.UUID `db:"id" json:"id"`
	QuestionID uuid.UUID `db:"question_id" json:"-"`
	Label      string    `db:"label" json:"label"`
	Position   int       `db:"position" json:"-"`
}

// OptionByID returns the option with the given id, if present.
func (q *Question) OptionByID(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID.String() == id {
			return opt, true
		}
	}
	return Option{}, false
}

type CreateServiceRequest struct {
	Name          string                  `json:"name" validate:"required"`
	Description   string                  `json:"description"`
	Amount        string                  `json:"amount" validate:"required"`
	AmountMonthly string                  `json:"amountMonthly"`
	Questions     []CreateQuestionRequest `json:"questions" validate:"dive"`
}

type CreateQuestionRequest struct {
	Text       string     `json:"question" validate:"required"`
	AnswerType AnswerType `json:"answerType" validate:"required"`
	Options    []string   `json:"options"`
}
