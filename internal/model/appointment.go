package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// AppointmentStatuses is the closed set of admin-selectable statuses.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCancelled,
	AppointmentStatusCompleted,
}

func (s AppointmentStatus) Valid() bool {
	for _, st := range AppointmentStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// QuestionAnswer pairs a question's text with the patient's resolved,
// human-readable answer.
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuestionAnswers is stored as a jsonb column.
type QuestionAnswers []QuestionAnswer

func (qa QuestionAnswers) Value() (driver.Value, error) {
	if qa == nil {
		qa = QuestionAnswers{}
	}
	return json.Marshal(qa)
}

func (qa *QuestionAnswers) Scan(src interface{}) error {
	if src == nil {
		*qa = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type %T for QuestionAnswers", src)
	}
	return json.Unmarshal(b, qa)
}

// StringSlice is stored as a jsonb column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported type %T for StringSlice", src)
	}
	return json.Unmarshal(b, s)
}

// Appointment is a booking created from a completed intake questionnaire.
type Appointment struct {
	Base
	Name        string            `db:"name" json:"name"`
	Phone       string            `db:"phone" json:"phone"`
	Email       string            `db:"email" json:"email,omitempty"`
	Address     string            `db:"address" json:"address"`
	Note        string            `db:"note" json:"note"`
	Status      AppointmentStatus `db:"status" json:"status"`
	ServiceID   uuid.UUID         `db:"service_id" json:"serviceId"`
	ServiceName string            `db:"service_name" json:"serviceName,omitempty"`
	Questions   QuestionAnswers   `db:"questions" json:"questions"`
	Files       StringSlice       `db:"files" json:"files"`
}

// CreateAppointmentRequest is the JSON carried in the multipart "data"
// field of the intake submission.
type CreateAppointmentRequest struct {
	Name      string            `json:"name" validate:"required"`
	Phone     string            `json:"phone" validate:"required"`
	Email     string            `json:"email"`
	Address   string            `json:"address"`
	Note      string            `json:"note"`
	Status    AppointmentStatus `json:"status"`
	ServiceID uuid.UUID         `json:"serviceId" validate:"required"`
	Questions []QuestionAnswer  `json:"questions"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}
