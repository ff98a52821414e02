package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/niramoy/clinic-api/internal/config"
	"github.com/niramoy/clinic-api/internal/model"
)

type gomailService struct {
	dialer     *gomail.Dialer
	from       string
	adminEmail string
}

func NewGomailService(cfg config.SMTPConfig) Service {
	return &gomailService{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.From,
		adminEmail: cfg.AdminEmail,
	}
}

func (s *gomailService) SendAppointmentNotification(ctx context.Context, appointment *model.Appointment) error {
	var b strings.Builder
	fmt.Fprintf(&b, "New appointment from %s (%s)\n\n", appointment.Name, appointment.Phone)
	if appointment.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", appointment.Address)
	}
	if appointment.Note != "" {
		fmt.Fprintf(&b, "Note: %s\n", appointment.Note)
	}
	fmt.Fprintf(&b, "Status: %s\n\n", appointment.Status)
	for _, qa := range appointment.Questions {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n\n", qa.Question, qa.Answer)
	}

	subject := fmt.Sprintf("New appointment: %s", appointment.Name)
	return s.SendCustom(ctx, s.adminEmail, subject, b.String())
}

func (s *gomailService) SendCustom(ctx context.Context, to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
