package testimonial

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	"github.com/niramoy/clinic-api/internal/service/event"
	apperrors "github.com/niramoy/clinic-api/pkg/errors"
)

const listCacheKey = "testimonials:list"

type Service struct {
	repo   repository.TestimonialRepository
	events *event.Service
	cache  *cache.Cache
}

func NewService(repo repository.TestimonialRepository, events *event.Service, ttl, cleanup time.Duration) *Service {
	return &Service{
		repo:   repo,
		events: events,
		cache:  cache.New(ttl, cleanup),
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Testimonial, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Testimonial), nil
	}

	testimonials, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, testimonials, cache.DefaultExpiration)
	return testimonials, nil
}

func (s *Service) Create(ctx context.Context, req *model.CreateTestimonialRequest, image string) (*model.Testimonial, error) {
	testimonial := &model.Testimonial{
		Name:        req.Name,
		Address:     req.Address,
		ServiceName: req.ServiceName,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Date:        req.Date,
		Image:       image,
	}

	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, err
	}
	s.cache.Delete(listCacheKey)

	if err := s.events.Emit(ctx, model.EventTestimonialCreated, testimonial); err != nil {
		log.Error().Err(err).Str("testimonial_id", testimonial.ID.String()).Msg("failed to record testimonial event")
	}

	return testimonial, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperrors.NotFound("testimonial", err)
		}
		return err
	}
	s.cache.Delete(listCacheKey)
	return nil
}
