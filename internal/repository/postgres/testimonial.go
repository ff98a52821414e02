package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/niramoy/clinic-api/internal/model"
)

func (r *testimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	query := `
		INSERT INTO testimonials (
			id, name, address, service_name, rating, comment,
			date, image, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	testimonial.ID = uuid.New()
	testimonial.CreatedAt = time.Now()
	testimonial.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		testimonial.ID,
		testimonial.Name,
		testimonial.Address,
		testimonial.ServiceName,
		testimonial.Rating,
		testimonial.Comment,
		testimonial.Date,
		testimonial.Image,
		testimonial.CreatedAt,
		testimonial.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *testimonialRepository) List(ctx context.Context) ([]*model.Testimonial, error) {
	query := `
		SELECT id, name, address, service_name, rating, comment,
			   date, image, created_at, updated_at
		FROM testimonials
		ORDER BY created_at DESC
	`
	var testimonials []*model.Testimonial
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM testimonials
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
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
