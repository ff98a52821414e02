package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	apperrors "github.com/niramoy/clinic-api/pkg/errors"
)

const (
	listCacheKey   = "services:list"
	getCachePrefix = "services:"
)

// Service manages the public service catalog. Public reads go through
// an in-process cache; admin mutations invalidate it.
type Service struct {
	repo  repository.ServiceRepository
	cache *cache.Cache
}

func NewService(repo repository.ServiceRepository, ttl, cleanup time.Duration) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, cleanup),
	}
}

func (s *Service) List(ctx context.Context) ([]*model.Service, error) {
	if cached, ok := s.cache.Get(listCacheKey); ok {
		return cached.([]*model.Service), nil
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(listCacheKey, services, cache.DefaultExpiration)
	return services, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	key := getCachePrefix + id.String()
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.Service), nil
	}

	service, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, err
	}
	s.cache.Set(key, service, cache.DefaultExpiration)
	return service, nil
}

// Create validates the questionnaire schema and persists the service.
// Choice questions must carry at least one option; options supplied on
// TEXT questions are dropped.
func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest, image string) (*model.Service, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, qr := range req.Questions {
		if !qr.AnswerType.Valid() {
			return nil, apperrors.BadRequest(fmt.Sprintf("question %d: invalid answer type %q", i+1, qr.AnswerType), nil)
		}

		q := model.Question{
			Text:       qr.Text,
			AnswerType: qr.AnswerType,
		}
		if qr.AnswerType.HasOptions() {
			if len(qr.Options) == 0 {
				return nil, apperrors.BadRequest(fmt.Sprintf("question %d: %s questions require options", i+1, qr.AnswerType), nil)
			}
			for _, label := range qr.Options {
				q.Options = append(q.Options, model.Option{Label: label})
			}
		}
		questions = append(questions, q)
	}

	service := &model.Service{
		Name:          req.Name,
		Description:   req.Description,
		Image:         image,
		Amount:        req.Amount,
		AmountMonthly: req.AmountMonthly,
		Questions:     questions,
	}

	if err := s.repo.Create(ctx, service); err != nil {
		return nil, err
	}

	s.invalidate()
	return service, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperrors.NotFound("service", err)
		}
		return err
	}

	s.invalidate()
	s.cache.Delete(getCachePrefix + id.String())
	return nil
}

func (s *Service) invalidate() {
	s.cache.Delete(listCacheKey)
}
