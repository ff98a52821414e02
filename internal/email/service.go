package email

import (
	"context"

	"github.com/niramoy/clinic-api/internal/model"
)

// Service sends operational notifications to the clinic staff.
type Service interface {
	SendAppointmentNotification(ctx context.Context, appointment *model.Appointment) error
	SendCustom(ctx context.Context, to string, subject string, content string) error
}
