package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/niramoy/clinic-api/internal/intake"
	"github.com/niramoy/clinic-api/internal/model"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission on the same form is still running.
var ErrSubmitInFlight = errors.New("submission already in flight")

// IntakeSubmission drives one questionnaire submission. It owns the
// form state and guards against double submits: a second Submit while
// the first is on the wire is rejected instead of creating a duplicate
// appointment.
type IntakeSubmission struct {
	form  *intake.Form
	files []FileUpload

	mu       sync.Mutex
	inFlight bool
}

func NewIntakeSubmission(service *model.Service) (*IntakeSubmission, error) {
	form, err := intake.NewForm(service)
	if err != nil {
		return nil, err
	}
	return &IntakeSubmission{form: form}, nil
}

// Form exposes the underlying questionnaire state.
func (s *IntakeSubmission) Form() *intake.Form {
	return s.form
}

// AttachFile adds a supporting file sent with the appointment.
func (s *IntakeSubmission) AttachFile(f FileUpload) {
	s.files = append(s.files, f)
}

// Submit validates the form against the contact details and posts the
// appointment. Validation failures surface before any network call.
func (s *IntakeSubmission) Submit(ctx context.Context, c *Client, contact intake.Contact) (*model.Appointment, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	payload, err := s.form.Payload(contact)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeMultipart(payload, "files", s.files)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/appointment/create-appointment", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var appointment model.Appointment
	if err := c.do(req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}
