// Package intake implements the dynamic questionnaire flow: a Form is
// built from a service's question schema, collects one answer per
// question, validates completeness and produces the appointment
// creation payload.
package intake

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

var (
	ErrMissingContact  = errors.New("name and phone are required")
	ErrUnanswered      = errors.New("all questions must be answered")
	ErrUnknownQuestion = errors.New("unknown question")
	ErrUnknownOption   = errors.New("unknown option")
	ErrNotTextQuestion = errors.New("question does not take free text")
	ErrNoOptions       = errors.New("question has no options")
)

// Contact carries the patient details submitted with the questionnaire.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Note    string
}

// Form holds the in-progress answers for one service's questionnaire.
// Answers are keyed by question id; setting an answer overwrites any
// prior entry for that question, which is what makes choice questions
// single-select.
type Form struct {
	service *model.Service
	answers map[uuid.UUID]string
}

func NewForm(service *model.Service) (*Form, error) {
	if service == nil {
		return nil, errors.New("service is required")
	}
	return &Form{
		service: service,
		answers: make(map[uuid.UUID]string),
	}, nil
}

// Service returns the schema the form was built from.
func (f *Form) Service() *model.Service {
	return f.service
}

func (f *Form) question(id uuid.UUID) (*model.Question, error) {
	for i := range f.service.Questions {
		if f.service.Questions[i].ID == id {
			return &f.service.Questions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
}

// Select records the chosen option for a CHECKBOX or DROPDOWN question.
// Choosing a second option replaces the first; exactly one option is
// selected at a time.
func (f *Form) Select(questionID, optionID uuid.UUID) error {
	q, err := f.question(questionID)
	if err != nil {
		return err
	}
	if !q.AnswerType.HasOptions() {
		return fmt.Errorf("%w: %s", ErrNoOptions, q.Text)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: %s", ErrNoOptions, q.Text)
	}
	if _, ok := q.OptionByID(optionID.String()); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, optionID)
	}
	f.answers[questionID] = optionID.String()
	return nil
}

// SetText records the free-text answer for a TEXT question.
func (f *Form) SetText(questionID uuid.UUID, value string) error {
	q, err := f.question(questionID)
	if err != nil {
		return err
	}
	if q.AnswerType != model.AnswerTypeText {
		return fmt.Errorf("%w: %s", ErrNotTextQuestion, q.Text)
	}
	f.answers[questionID] = value
	return nil
}

// Answer returns the stored raw answer for a question, if any.
func (f *Form) Answer(questionID uuid.UUID) (string, bool) {
	v, ok := f.answers[questionID]
	return v, ok
}

// Unanswered returns the questions that do not yet have a non-empty answer.
func (f *Form) Unanswered() []model.Question {
	var missing []model.Question
	for _, q := range f.service.Questions {
		if v, ok := f.answers[q.ID]; !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, q)
		}
	}
	return missing
}

// Validate checks submission preconditions: non-blank name and phone,
// and a non-empty answer for every question. It has no side effects;
// on failure the form stays as it was.
func (f *Form) Validate(contact Contact) error {
	if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Phone) == "" {
		return ErrMissingContact
	}
	if missing := f.Unanswered(); len(missing) > 0 {
		return fmt.Errorf("%w (%d remaining)", ErrUnanswered, len(missing))
	}
	return nil
}

// Payload validates the form and builds the appointment creation
// request. Option ids stored for choice questions are resolved to
// their human-readable labels; an id that no longer matches an option
// is passed through unresolved. Entries follow the service's question
// order and pair each question's text with the resolved answer.
func (f *Form) Payload(contact Contact) (*model.CreateAppointmentRequest, error) {
	if err := f.Validate(contact); err != nil {
		return nil, err
	}

	questions := make([]model.QuestionAnswer, 0, len(f.service.Questions))
	for _, q := range f.service.Questions {
		raw := f.answers[q.ID]

		answer := raw
		if q.AnswerType.HasOptions() && len(q.Options) > 0 {
			if opt, ok := q.OptionByID(raw); ok {
				answer = opt.Label
			}
		}

		questions = append(questions, model.QuestionAnswer{
			Question: q.Text,
			Answer:   answer,
		})
	}

	return &model.CreateAppointmentRequest{
		Name:      contact.Name,
		Phone:     contact.Phone,
		Email:     contact.Email,
		Address:   contact.Address,
		Note:      contact.Note,
		Status:    model.AppointmentStatusPending,
		ServiceID: f.service.ID,
		Questions: questions,
	}, nil
}
