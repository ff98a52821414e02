package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

// ListAppointments fetches all appointments, newest first. Admin only.
func (c *Client) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	var appointments []*model.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointment", nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// GetAppointment fetches a single appointment. Admin only.
func (c *Client) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var appointment model.Appointment
	if err := c.doJSON(ctx, http.MethodGet, "/appointment/"+id.String(), nil, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// UpdateAppointmentStatus moves an appointment to a new status and
// returns the updated record. Admin only.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	req := &model.UpdateAppointmentStatusRequest{Status: status}
	var appointment model.Appointment
	if err := c.doJSON(ctx, http.MethodPatch, "/appointment/"+id.String(), req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// DeleteAppointment removes an appointment. Admin only.
func (c *Client) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return c.doJSON(ctx, http.MethodDelete, "/appointment/"+id.String(), nil, nil)
}

// FilterAppointments returns the appointments whose name, phone,
// status, service name or creation date contain the query, matched
// case-insensitively. An empty query returns the input unchanged.
func FilterAppointments(appointments []*model.Appointment, query string) []*model.Appointment {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return appointments
	}

	var matched []*model.Appointment
	for _, a := range appointments {
		fields := []string{
			a.Name,
			a.Phone,
			string(a.Status),
			a.ServiceName,
			a.CreatedAt.Format("2006-01-02"),
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), query) {
				matched = append(matched, a)
				break
			}
		}
	}
	return matched
}
