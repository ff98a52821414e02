package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/niramoy/clinic-api/internal/model"
	"github.com/niramoy/clinic-api/internal/repository/postgres"
	apperrors "github.com/niramoy/clinic-api/pkg/errors"
)

type fakeServiceRepo struct {
	services  map[uuid.UUID]*model.Service
	listCalls int
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[uuid.UUID]*model.Service)}
}

func (r *fakeServiceRepo) Create(_ context.Context, s *model.Service) error {
	s.ID = uuid.New()
	r.services[s.ID] = s
	return nil
}

func (r *fakeServiceRepo) Get(_ context.Context, id uuid.UUID) (*model.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	return s, nil
}

func (r *fakeServiceRepo) List(_ context.Context) ([]*model.Service, error) {
	r.listCalls++
	out := make([]*model.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeServiceRepo) UpdateImage(_ context.Context, id uuid.UUID, image string) error {
	s, ok := r.services[id]
	if !ok {
		return postgres.ErrNotFound
	}
	s.Image = image
	return nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.services[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func newTestService() (*Service, *fakeServiceRepo) {
	repo := newFakeServiceRepo()
	return NewService(repo, time.Minute, time.Minute), repo
}

func createRequest() *model.CreateServiceRequest {
	return &model.CreateServiceRequest{
		Name:   "Skin Consultation",
		Amount: "1500",
		Questions: []model.CreateQuestionRequest{
			{Text: "Describe your symptoms", AnswerType: model.AnswerTypeText},
			{Text: "How severe is the condition?", AnswerType: model.AnswerTypeDropdown, Options: []string{"Mild", "Severe"}},
		},
	}
}

func TestCreateBuildsQuestionnaire(t *testing.T) {
	s, _ := newTestService()

	got, err := s.Create(context.Background(), createRequest(), "https://cdn.test/derma.jpg")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/derma.jpg", got.Image)
	require.Len(t, got.Questions, 2)
	assert.Empty(t, got.Questions[0].Options)
	require.Len(t, got.Questions[1].Options, 2)
	assert.Equal(t, "Mild", got.Questions[1].Options[0].Label)
}

func TestCreateRejectsChoiceQuestionWithoutOptions(t *testing.T) {
	s, _ := newTestService()

	req := createRequest()
	req.Questions[1].Options = nil

	_, err := s.Create(context.Background(), req, "")
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.StatusCode())
}

func TestCreateRejectsUnknownAnswerType(t *testing.T) {
	s, _ := newTestService()

	req := createRequest()
	req.Questions[0].AnswerType = model.AnswerType("RADIO")

	_, err := s.Create(context.Background(), req, "")
	require.Error(t, err)
}

func TestCreateDropsOptionsOnTextQuestions(t *testing.T) {
	s, _ := newTestService()

	req := createRequest()
	req.Questions[0].Options = []string{"should", "vanish"}

	got, err := s.Create(context.Background(), req, "")
	require.NoError(t, err)
	assert.Empty(t, got.Questions[0].Options)
}

func TestListIsCached(t *testing.T) {
	s, repo := newTestService()

	_, err := s.List(context.Background())
	require.NoError(t, err)
	_, err = s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}

func TestCreateInvalidatesListCache(t *testing.T) {
	s, repo := newTestService()

	_, err := s.List(context.Background())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), createRequest(), "")
	require.NoError(t, err)

	services, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, services, 1)
	assert.Equal(t, 2, repo.listCalls)
}

func TestGetMissingService(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Get(context.Background(), uuid.New())
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())
}
