package appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	"github.com/niramoy/clinic-api/internal/service/event"
	apperrors "github.com/niramoy/clinic-api/pkg/errors"
)

type Service struct {
	repo        repository.AppointmentRepository
	serviceRepo repository.ServiceRepository
	events      *event.Service
}

func NewService(repo repository.AppointmentRepository, serviceRepo repository.ServiceRepository, events *event.Service) *Service {
	return &Service{
		repo:        repo,
		serviceRepo: serviceRepo,
		events:      events,
	}
}

// CreateFromIntake persists a booking built from a completed intake
// questionnaire. The submission invariant is re-checked here: name and
// phone must be non-blank and every question of the service must carry
// a non-empty answer.
func (s *Service) CreateFromIntake(ctx context.Context, req *model.CreateAppointmentRequest, files []string) (*model.Appointment, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, apperrors.BadRequest("name and phone are required", nil)
	}

	svc, err := s.serviceRepo.Get(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperrors.BadRequest("unknown service", err)
		}
		return nil, err
	}

	if err := checkAnswers(svc, req.Questions); err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Address:   req.Address,
		Note:      req.Note,
		Status:    model.AppointmentStatusPending,
		ServiceID: svc.ID,
		Questions: req.Questions,
		Files:     files,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	appointment.ServiceName = svc.Name

	if err := s.events.Emit(ctx, model.EventAppointmentCreated, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to record appointment event")
	}

	return appointment, nil
}

// checkAnswers requires one non-empty answer per service question,
// matched by question text (the payload carries resolved text/answer
// pairs, not question ids).
func checkAnswers(svc *model.Service, answers []model.QuestionAnswer) error {
	answered := make(map[string]bool, len(answers))
	for _, qa := range answers {
		if strings.TrimSpace(qa.Answer) != "" {
			answered[qa.Question] = true
		}
	}

	for _, q := range svc.Questions {
		if !answered[q.Text] {
			return apperrors.BadRequest(fmt.Sprintf("question %q must be answered", q.Text), nil)
		}
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

// UpdateStatus moves an appointment to one of the admin-selectable
// statuses. Targets outside the closed set are rejected.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status %q", status), nil)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, err
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.events.Emit(ctx, model.EventAppointmentStatusChanged, appointment); err != nil {
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("failed to record status change event")
	}

	return appointment, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperrors.NotFound("appointment", err)
		}
		return err
	}
	return nil
}
