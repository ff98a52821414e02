package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/niramoy/clinic-api/internal/model"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	service.ID = uuid.New()
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	query := `
		INSERT INTO services (
			id, name, description, image, amount, amount_monthly,
			position, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.ExecContext(ctx, query,
		service.ID,
		service.Name,
		service.Description,
		service.Image,
		service.Amount,
		service.AmountMonthly,
		service.Position,
		service.CreatedAt,
		service.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	questionQuery := `
		INSERT INTO questions (id, service_id, question, answer_type, position)
		VALUES ($1, $2, $3, $4, $5)
	`
	optionQuery := `
		INSERT INTO options (id, question_id, label, position)
		VALUES ($1, $2, $3, $4)
	`
	for qi := range service.Questions {
		q := &service.Questions[qi]
		q.ID = uuid.New()
		q.ServiceID = service.ID
		q.Position = qi

		if _, err := tx.ExecContext(ctx, questionQuery, q.ID, q.ServiceID, q.Text, q.AnswerType, q.Position); err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}

		for oi := range q.Options {
			opt := &q.Options[oi]
			opt.ID = uuid.New()
			opt.QuestionID = q.ID
			opt.Position = oi

			if _, err := tx.ExecContext(ctx, optionQuery, opt.ID, opt.QuestionID, opt.Label, opt.Position); err != nil {
				return fmt.Errorf("failed to create option: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, name, description, image, amount, amount_monthly,
			   position, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	if err := r.db.GetContext(ctx, &service, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if err := r.loadQuestions(ctx, []*model.Service{&service}); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, description, image, amount, amount_monthly,
			   position, created_at, updated_at
		FROM services
		ORDER BY position ASC, created_at ASC
	`
	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	if err := r.loadQuestions(ctx, services); err != nil {
		return nil, err
	}
	return services, nil
}

// loadQuestions attaches ordered questions and options to the given services.
func (r *serviceRepository) loadQuestions(ctx context.Context, services []*model.Service) error {
	if len(services) == 0 {
		return nil
	}

	serviceIDs := make([]string, len(services))
	byID := make(map[uuid.UUID]*model.Service, len(services))
	for i, s := range services {
		serviceIDs[i] = s.ID.String()
		byID[s.ID] = s
		s.Questions = []model.Question{}
	}

	questionQuery := `
		SELECT id, service_id, question, answer_type, position
		FROM questions
		WHERE service_id = ANY($1::uuid[])
		ORDER BY position ASC
	`
	var questions []model.Question
	if err := r.db.SelectContext(ctx, &questions, questionQuery, pq.Array(serviceIDs)); err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil
	}

	questionIDs := make([]string, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID.String()
	}

	optionQuery := `
		SELECT id, question_id, label, position
		FROM options
		WHERE question_id = ANY($1::uuid[])
		ORDER BY position ASC
	`
	var options []model.Option
	if err := r.db.SelectContext(ctx, &options, optionQuery, pq.Array(questionIDs)); err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	optionsByQuestion := make(map[uuid.UUID][]model.Option)
	for _, opt := range options {
		optionsByQuestion[opt.QuestionID] = append(optionsByQuestion[opt.QuestionID], opt)
	}

	for _, q := range questions {
		q.Options = optionsByQuestion[q.ID]
		if svc, ok := byID[q.ServiceID]; ok {
			svc.Questions = append(svc.Questions, q)
		}
	}
	return nil
}

func (r *serviceRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	query := `
		UPDATE services
		SET image = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, image, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update service image: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// questions and options cascade via foreign keys
	query := `
		DELETE FROM services
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
