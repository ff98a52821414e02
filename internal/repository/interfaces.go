package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *model.Testimonial) error
	List(ctx context.Context) ([]*model.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
