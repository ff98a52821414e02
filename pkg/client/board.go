package client

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

// AppointmentBoard is the dashboard view over the appointment list.
// Status changes apply optimistically so the UI reflects the move
// immediately; if the server rejects it the previous status is
// restored. Deletes refetch the list so the board never drifts from
// the server after a removal.
type AppointmentBoard struct {
	client *Client

	mu           sync.Mutex
	appointments []*model.Appointment
}

func NewAppointmentBoard(client *Client) *AppointmentBoard {
	return &AppointmentBoard{client: client}
}

// Refresh reloads the board from the server.
func (b *AppointmentBoard) Refresh(ctx context.Context) error {
	appointments, err := b.client.ListAppointments(ctx)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.appointments = appointments
	b.mu.Unlock()
	return nil
}

// Appointments returns a snapshot of the current board.
func (b *AppointmentBoard) Appointments() []*model.Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*model.Appointment, len(b.appointments))
	copy(out, b.appointments)
	return out
}

// Filter applies the dashboard search box over the current board.
func (b *AppointmentBoard) Filter(query string) []*model.Appointment {
	return FilterAppointments(b.Appointments(), query)
}

// MoveStatus updates an appointment's status optimistically. The local
// entry flips first; on server failure it rolls back to the previous
// status and the error is returned.
func (b *AppointmentBoard) MoveStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	b.mu.Lock()
	var previous model.AppointmentStatus
	var target *model.Appointment
	for _, a := range b.appointments {
		if a.ID == id {
			target = a
			previous = a.Status
			a.Status = status
			break
		}
	}
	b.mu.Unlock()

	updated, err := b.client.UpdateAppointmentStatus(ctx, id, status)
	if err != nil {
		if target != nil {
			b.mu.Lock()
			target.Status = previous
			b.mu.Unlock()
		}
		return err
	}

	if target != nil {
		b.mu.Lock()
		target.Status = updated.Status
		b.mu.Unlock()
	}
	return nil
}

// Remove deletes an appointment and refetches the list. One DELETE
// goes out per call regardless of the refetch outcome.
func (b *AppointmentBoard) Remove(ctx context.Context, id uuid.UUID) error {
	if err := b.client.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	return b.Refresh(ctx)
}
